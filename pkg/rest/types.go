// Wire types of the operator API. Hand-written for now; the long-term plan
// is to generate this file from an openapi spec as types.gen.go.
package rest

// Lot is a normalized supplier lot as the dashboard renders it.
type Lot struct {
	ID            string        `json:"id"`
	Status        string        `json:"status"`
	DisplayStatus string        `json:"display_status"`
	SupplierName  string        `json:"supplier_name"`
	SupplierID    string        `json:"supplier_id,omitempty"`
	WhatsappID    string        `json:"supplier_whatsapp_id,omitempty"`
	Region        string        `json:"region,omitempty"`
	ReceivedAt    string        `json:"received_at,omitempty"`
	Fresh         bool          `json:"fresh"`
	Busy          bool          `json:"busy"`
	Positions     []LotPosition `json:"positions"`
}

type LotPosition struct {
	Brand      string   `json:"brand,omitempty"`
	Model      string   `json:"model,omitempty"`
	Color      string   `json:"color,omitempty"`
	CapacityGB *int     `json:"capacity_gb,omitempty"`
	Quantity   *int     `json:"quantity,omitempty"`
	UnitPrice  *float64 `json:"unit_price,omitempty"`
	Currency   string   `json:"currency,omitempty"`
	Region     string   `json:"region,omitempty"`
	Activation string   `json:"activation,omitempty"`
}

// LotsPage is the full dashboard view: the visible lots plus the status
// line and filter state they were computed under.
type LotsPage struct {
	Lots           []Lot  `json:"lots"`
	Total          int    `json:"total"`
	StatusMessage  string `json:"status_message"`
	StatusError    bool   `json:"status_error"`
	StatusFilter   string `json:"status_filter"`
	SupplierFilter string `json:"supplier_filter"`
	NotifyBusy     bool   `json:"notify_busy"`
}

type AcceptRequest struct {
	MarginPercent *float64 `json:"margin_percent" validate:"required,gte=0,lte=500"`
}

type FiltersRequest struct {
	Status   string `json:"status" validate:"required,oneof=all parsed sent error new"`
	Supplier string `json:"supplier"`
}

type SessionRequest struct {
	IntervalSeconds int `json:"interval_seconds" validate:"required,oneof=5 15 30 60"`
}

// Session reports whether polling is live and at what period.
type Session struct {
	Active          bool `json:"active"`
	IntervalSeconds int  `json:"interval_seconds,omitempty"`
}

type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type Toasts struct {
	Toasts []Toast `json:"toasts"`
}

// Error is the uniform error envelope of every non-2xx reply.
type Error struct {
	Code ErrorCode `json:"code"`

	// Message is safe to surface in a UI.
	Message string `json:"message"`
}

type ErrorCode string
