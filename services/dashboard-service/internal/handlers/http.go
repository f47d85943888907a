package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/dashboard"
	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/events"
	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/livingapps"
)

// RecordStore is everything the handlers need from the Living Apps client.
type RecordStore interface {
	dashboard.Store
	CreateAppointment(ctx context.Context, fields livingapps.AppointmentFields) (livingapps.AppointmentRequest, error)
	ServiceRecordURL(recordID string) string
}

type Handler struct {
	store       RecordStore
	publisher   *events.Publisher
	logger      *slog.Logger
	horizonDays int
	now         func() time.Time
}

func New(store RecordStore, publisher *events.Publisher, logger *slog.Logger, horizonDays int) *Handler {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	return &Handler{
		store:       store,
		publisher:   publisher,
		logger:      logger,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/dashboard", h.GetDashboard)
	mux.HandleFunc("/api/services", h.ListServices)
	mux.HandleFunc("/api/appointments", h.CreateAppointment)
}

// GetDashboard loads a fresh snapshot of all three collections and returns
// every derived view-model. A failed fetch is terminal for the request; the
// caller retries by requesting again (full reload, no partial recovery).
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := dashboard.LoadSnapshot(r.Context(), h.store)
	if err != nil {
		h.logger.Error("snapshot load failed", "err", err)
		http.Error(w, storeMessage(err), http.StatusBadGateway)
		return
	}

	view := dashboard.BuildView(snap, h.now(), h.horizonDays)
	writeJSON(w, http.StatusOK, view)
}

type serviceItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	DurationMins int     `json:"duration_minutes,omitempty"`
	Price        float64 `json:"price,omitempty"`
	ValidFrom    string  `json:"valid_from,omitempty"`
	ValidUntil   string  `json:"valid_until,omitempty"`
}

// ListServices returns the service catalog for the intake form's select.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	services, err := h.store.ListServices(r.Context())
	if err != nil {
		h.logger.Error("service list failed", "err", err)
		http.Error(w, storeMessage(err), http.StatusBadGateway)
		return
	}

	items := make([]serviceItem, 0, len(services))
	for _, s := range services {
		name := s.Fields.Name
		if name == "" {
			name = "Unbenannt"
		}
		items = append(items, serviceItem{
			ID:           s.ID,
			Name:         name,
			Description:  s.Fields.Description,
			DurationMins: s.Fields.DurationMins,
			Price:        s.Fields.Price,
			ValidFrom:    s.Fields.ValidFrom,
			ValidUntil:   s.Fields.ValidUntil,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

type createAppointmentRequest struct {
	FirstName           string `json:"kunde_vorname"`
	LastName            string `json:"kunde_nachname"`
	Phone               string `json:"kunde_telefon"`
	Email               string `json:"e_mail_adresse"`
	Street              string `json:"kunde_strasse"`
	HouseNo             string `json:"kunde_hausnummer"`
	ZipCode             string `json:"kunde_postleitzahl"`
	City                string `json:"kunde_stadt"`
	Date                string `json:"wunschtermin_datum"`   // YYYY-MM-DD
	Time                string `json:"wunschtermin_uhrzeit"` // HH:MM
	Duration            string `json:"gesamtdauer"`
	ServiceID           string `json:"leistung_id"` // bare 24-hex record id
	Notes               string `json:"anmerkungen"`
	TermsAccepted       bool   `json:"agb_akzeptiert"`
	PrivacyAcknowledged bool   `json:"datenschutz_zur_kenntnis"`
}

type createAppointmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	RequestedAt   string `json:"wunschtermin,omitempty"`
}

var bareRecordID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// CreateAppointment assembles and submits a new appointment request. The
// date and time arrive as separate components and are combined into the
// exact YYYY-MM-DDTHH:MM shape; a chosen service is submitted as the full
// applookup URL, never a bare id.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ServiceID = strings.TrimSpace(req.ServiceID)

	if req.FirstName == "" || req.LastName == "" || req.Phone == "" {
		http.Error(w, "kunde_vorname, kunde_nachname and kunde_telefon are required", http.StatusBadRequest)
		return
	}
	if !dashboard.ValidDuration(req.Duration) {
		http.Error(w, "invalid gesamtdauer", http.StatusBadRequest)
		return
	}
	if req.ServiceID != "" && !bareRecordID.MatchString(req.ServiceID) {
		http.Error(w, "invalid leistung_id", http.StatusBadRequest)
		return
	}
	fields := livingapps.AppointmentFields{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Phone:               req.Phone,
		Email:               strings.TrimSpace(req.Email),
		Street:              strings.TrimSpace(req.Street),
		HouseNo:             strings.TrimSpace(req.HouseNo),
		ZipCode:             strings.TrimSpace(req.ZipCode),
		City:                strings.TrimSpace(req.City),
		Duration:            req.Duration,
		Notes:               strings.TrimSpace(req.Notes),
		TermsAccepted:       req.TermsAccepted,
		PrivacyAcknowledged: req.PrivacyAcknowledged,
	}
	// A missing date or time component means the combined field is omitted
	// entirely; only a malformed pair is rejected.
	if combined, ok := dashboard.CombineDateTime(req.Date, req.Time); ok {
		fields.RequestedAt = combined
	} else if req.Date != "" && req.Time != "" {
		http.Error(w, "invalid wunschtermin_datum or wunschtermin_uhrzeit", http.StatusBadRequest)
		return
	}
	if req.ServiceID != "" {
		fields.ServiceRef = h.store.ServiceRecordURL(req.ServiceID)
	}

	created, err := h.store.CreateAppointment(r.Context(), fields)
	if err != nil {
		h.logger.Error("appointment create failed", "err", err)
		http.Error(w, storeMessage(err), http.StatusBadGateway)
		return
	}

	h.publisher.AppointmentCreated(r.Context(), events.AppointmentCreated{
		AppointmentID: created.ID,
		RequestedAt:   fields.RequestedAt,
		ServiceRef:    fields.ServiceRef,
		CreatedAt:     created.CreatedAt,
	})

	h.logger.Info("appointment request created", "appointment_id", created.ID)
	writeJSON(w, http.StatusCreated, createAppointmentResponse{
		AppointmentID: created.ID,
		RequestedAt:   fields.RequestedAt,
	})
}

// storeMessage surfaces the store's free-text failure message; anything
// else degrades to a generic line.
func storeMessage(err error) string {
	var apiErr *livingapps.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return "record store error: " + apiErr.Message
	}
	return "record store unavailable"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
