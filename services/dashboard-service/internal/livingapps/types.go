package livingapps

// Record field names below are the Living Apps wire names and must not be
// changed: the store is a generic low-code backend and matches on the exact
// German identifiers configured in the studio's apps.

// Customer is a read-only record from the customer collection.
type Customer struct {
	ID        string         `json:"record_id"`
	CreatedAt string         `json:"createdat"`
	UpdatedAt string         `json:"updatedat,omitempty"`
	Fields    CustomerFields `json:"fields"`
}

type CustomerFields struct {
	FirstName string `json:"vorname,omitempty"`
	LastName  string `json:"nachname,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"telefon,omitempty"`
	Street    string `json:"strasse,omitempty"`
	HouseNo   string `json:"hausnummer,omitempty"`
	ZipCode   string `json:"postleitzahl,omitempty"`
	City      string `json:"stadt,omitempty"`
}

// Service is a bookable offering from the service catalog collection.
type Service struct {
	ID        string        `json:"record_id"`
	CreatedAt string        `json:"createdat"`
	UpdatedAt string        `json:"updatedat,omitempty"`
	Fields    ServiceFields `json:"fields"`
}

type ServiceFields struct {
	Name          string  `json:"leistungsname,omitempty"`
	Description   string  `json:"beschreibung,omitempty"`
	DurationMins  int     `json:"dauer_minuten,omitempty"`
	Price         float64 `json:"preis,omitempty"`
	VoucherCode   string  `json:"gutschein_code,omitempty"`
	VoucherText   string  `json:"gutschein_beschreibung,omitempty"`
	DiscountType  string  `json:"rabatt_typ,omitempty"` // "prozent" or "betrag"
	DiscountValue float64 `json:"rabatt_wert,omitempty"`
	ValidFrom     string  `json:"gueltig_von,omitempty"` // YYYY-MM-DD or ISO string
	ValidUntil    string  `json:"gueltig_bis,omitempty"`
}

// Duration buckets allowed on an appointment request.
const (
	Duration30 = "dauer_30"
	Duration45 = "dauer_45"
	Duration60 = "dauer_60"
)

// AppointmentRequest is a customer's requested booking. There is no
// confirmation or status field; the store only collects intake records.
type AppointmentRequest struct {
	ID        string            `json:"record_id"`
	CreatedAt string            `json:"createdat"`
	UpdatedAt string            `json:"updatedat,omitempty"`
	Fields    AppointmentFields `json:"fields"`
}

type AppointmentFields struct {
	Email         string `json:"e_mail_adresse,omitempty"`
	Sessions      string `json:"anzahl_anwendungen,omitempty"`
	Duration      string `json:"gesamtdauer,omitempty"`             // one of the Duration* constants
	ServiceRef    string `json:"massageleistung,omitempty"`         // applookup URL into the service catalog
	AltServiceRef string `json:"ausgewaehlte_leistung_2,omitempty"` // applookup URL into the second catalog
	FirstName     string `json:"kunde_vorname,omitempty"`
	LastName      string `json:"kunde_nachname,omitempty"`
	Phone         string `json:"kunde_telefon,omitempty"`
	Street        string `json:"kunde_strasse,omitempty"`
	HouseNo       string `json:"kunde_hausnummer,omitempty"`
	ZipCode       string `json:"kunde_postleitzahl,omitempty"`
	City          string `json:"kunde_stadt,omitempty"`
	RequestedAt   string `json:"wunschtermin,omitempty"` // YYYY-MM-DDTHH:MM, naive local time
	Notes         string `json:"anmerkungen,omitempty"`

	TermsAccepted       bool `json:"ich_habe_die_allgemeinen_geschaeftsbedigungen_agb_gelesen_und_stimme_diesen_hiermit_zu,omitempty"`
	PrivacyAcknowledged bool `json:"ich_habe_die_datenschutzerklaerung_zur_kenntnis_genommen,omitempty"`
}
