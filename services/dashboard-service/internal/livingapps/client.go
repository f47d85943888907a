package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the production Living Apps REST endpoint.
const DefaultBaseURL = "https://my.living-apps.de/rest"

// Default app ids of the studio's three collections.
const (
	DefaultCustomersAppID    = "69134384a7881852231ba8c7"
	DefaultServicesAppID     = "6913437daff7287a0f9bab21"
	DefaultAppointmentsAppID = "691343895f81839bc1f243fe"
)

// APIError is the single failure kind for any non-success store response.
// The store returns free-text error bodies, not structured codes.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("living apps: status %d: %s", e.StatusCode, e.Message)
}

type Config struct {
	BaseURL           string
	CustomersAppID    string
	ServicesAppID     string
	AppointmentsAppID string
	// AuthToken is sent as a bearer token when set. The store normally
	// authenticates via session cookies; server-side access uses a token.
	AuthToken string
	Timeout   time.Duration
}

// Client talks to the Living Apps generic record CRUD API. It owns no state
// beyond the HTTP client; every call returns a fresh decoded snapshot.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.CustomersAppID == "" {
		cfg.CustomersAppID = DefaultCustomersAppID
	}
	if cfg.ServicesAppID == "" {
		cfg.ServicesAppID = DefaultServicesAppID
	}
	if cfg.AppointmentsAppID == "" {
		cfg.AppointmentsAppID = DefaultAppointmentsAppID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// ServiceRecordURL builds the applookup URL for a service catalog record,
// the shape required when submitting a service reference.
func (c *Client) ServiceRecordURL(recordID string) string {
	return RecordURL(c.cfg.BaseURL, c.cfg.ServicesAppID, recordID)
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	raw, err := listRecords[CustomerFields](ctx, c, c.cfg.CustomersAppID)
	if err != nil {
		return nil, err
	}
	out := make([]Customer, 0, len(raw))
	for id, rec := range raw {
		out = append(out, Customer{ID: id, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt, Fields: rec.Fields})
	}
	sortByID(out, func(r Customer) string { return r.ID })
	return out, nil
}

func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	raw, err := listRecords[ServiceFields](ctx, c, c.cfg.ServicesAppID)
	if err != nil {
		return nil, err
	}
	out := make([]Service, 0, len(raw))
	for id, rec := range raw {
		out = append(out, Service{ID: id, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt, Fields: rec.Fields})
	}
	sortByID(out, func(r Service) string { return r.ID })
	return out, nil
}

func (c *Client) ListAppointments(ctx context.Context) ([]AppointmentRequest, error) {
	raw, err := listRecords[AppointmentFields](ctx, c, c.cfg.AppointmentsAppID)
	if err != nil {
		return nil, err
	}
	out := make([]AppointmentRequest, 0, len(raw))
	for id, rec := range raw {
		out = append(out, AppointmentRequest{ID: id, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt, Fields: rec.Fields})
	}
	sortByID(out, func(r AppointmentRequest) string { return r.ID })
	return out, nil
}

// CreateAppointment posts a new appointment request record. The store
// assigns the record id and creation timestamp.
func (c *Client) CreateAppointment(ctx context.Context, fields AppointmentFields) (AppointmentRequest, error) {
	var resp struct {
		ID string `json:"id"`
	}
	body := map[string]any{"fields": fields}
	path := "/apps/" + c.cfg.AppointmentsAppID + "/records"
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return AppointmentRequest{}, err
	}
	return AppointmentRequest{ID: resp.ID, Fields: fields}, nil
}

// ReadyCheck probes the service catalog collection. Any well-formed HTTP
// response below 500 counts as reachable.
func (c *Client) ReadyCheck() func(context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/apps/"+c.cfg.ServicesAppID+"/records", nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("record store returned status %d", resp.StatusCode)
		}
		return nil
	}
}

// recordEnvelope is the wire shape of one record in a list response. List
// responses are JSON objects keyed by record id, not arrays.
type recordEnvelope[F any] struct {
	CreatedAt string `json:"createdat"`
	UpdatedAt string `json:"updatedat"`
	Fields    F      `json:"fields"`
}

func listRecords[F any](ctx context.Context, c *Client, appID string) (map[string]recordEnvelope[F], error) {
	var out map[string]recordEnvelope[F]
	if err := c.do(ctx, http.MethodGet, "/apps/"+appID+"/records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}
}

// sortByID gives list results a stable order; the store's keyed-object
// responses decode in random map order.
func sortByID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
