package entity

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Lot statuses as they appear in the supplier feed. Matching is
// case-insensitive; a lot without a status behaves as parsed.
type LotStatus string

const (
	StatusParsed LotStatus = "parsed"
	StatusSent   LotStatus = "sent"
	StatusError  LotStatus = "error"
	StatusNew    LotStatus = "new"
)

// Effective returns the status used for filtering: lower-cased, with the
// absent value defaulting to parsed.
func (s LotStatus) Effective() LotStatus {
	if s == "" {
		return StatusParsed
	}

	return LotStatus(strings.ToLower(string(s)))
}

// Display returns the badge text: the raw value, or "new" when absent.
func (s LotStatus) Display() string {
	if s == "" {
		return string(StatusNew)
	}

	return string(s)
}

// LotID accepts both string and numeric ids from the feed and keeps the
// literal form, so accept/reject calls echo the id back in the type it
// arrived with.
type LotID string

func (id LotID) String() string {
	return string(id)
}

func (id *LotID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*id = LotID(s)

		return nil
	}

	*id = LotID(trimmed)

	return nil
}

func (id LotID) MarshalJSON() ([]byte, error) {
	// Only a canonical integer literal may go out unquoted: "007" or "+5"
	// parse fine but are not valid JSON numbers.
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

// FlexString tolerates string, number and null in fields the feed is not
// consistent about.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = FlexString(s)

		return nil
	}

	*f = FlexString(trimmed)

	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Positions collapses absent, null and non-array values to an empty
// sequence; a lot never carries nil positions after decoding.
type Positions []LotPosition

func (p *Positions) UnmarshalJSON(data []byte) error {
	var items []LotPosition
	if err := json.Unmarshal(data, &items); err != nil {
		*p = Positions{}
		return nil //nolint:nilerr // tolerated shape, not an error
	}

	if items == nil {
		items = []LotPosition{}
	}

	*p = items

	return nil
}

// LotPosition is one line item inside a lot. Every field is optional;
// absence renders as empty.
type LotPosition struct {
	Brand      string     `json:"brand,omitempty"`
	Model      string     `json:"model,omitempty"`
	Color      string     `json:"color,omitempty"`
	CapacityGB *int       `json:"capacity_gb,omitempty"`
	Quantity   *int       `json:"quantity,omitempty"`
	UnitPrice  *float64   `json:"unit_price,omitempty"`
	Currency   string     `json:"currency,omitempty"`
	Region     string     `json:"region,omitempty"`
	Activation FlexString `json:"activation,omitempty"`
}

// Lot is a supplier price offer awaiting an accept/reject decision.
type Lot struct {
	ID                 LotID      `json:"id"`
	Status             LotStatus  `json:"status,omitempty"`
	SupplierName       string     `json:"supplier_name,omitempty"`
	SupplierID         FlexString `json:"supplier_id,omitempty"`
	ReceivedAt         FlexString `json:"received_at,omitempty"`
	Region             string     `json:"region,omitempty"`
	SupplierWhatsappID FlexString `json:"supplier_whatsapp_id,omitempty"`
	Positions          Positions  `json:"positions"`
}

// DisplayName is the supplier name shown on the card, falling back to the
// supplier id when the name is absent.
func (l Lot) DisplayName() string {
	if l.SupplierName != "" {
		return l.SupplierName
	}

	return l.SupplierID.String()
}

const freshWindow = 5 * time.Minute

var receivedAtLayouts = []string{ //nolint:gochecknoglobals
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsFresh reports whether the lot was received within the last five
// minutes of now. Derived at render time, never stored.
func (l Lot) IsFresh(now time.Time) bool {
	received, ok := l.receivedAt()
	if !ok {
		return false
	}

	age := now.Sub(received)

	return age >= 0 && age < freshWindow
}

func (l Lot) receivedAt() (time.Time, bool) {
	raw := strings.TrimSpace(l.ReceivedAt.String())
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range receivedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
