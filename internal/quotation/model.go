package quotation

import "time"

// Status is the lifecycle state of a quotation.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusSent     Status = "SENT"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	// StatusConverted is engine-side only: the service of record keeps the
	// quotation ACCEPTED and links the created sale instead.
	StatusConverted Status = "CONVERTED"
)

// DefaultValidityDays applies when a create request omits the validity window.
const DefaultValidityDays = 15

// Item is one persisted quotation line.
type Item struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// Quotation is the persisted counterpart of a composed cart: a non-binding
// priced offer with an expiration window.
type Quotation struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	ClientID     int64     `json:"client_id"`
	ClientName   string    `json:"client_name,omitempty"`
	SellerID     int64     `json:"seller_id"`
	ValidityDays int       `json:"validity_days"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Subtotal     float64   `json:"subtotal"`
	Tax          float64   `json:"tax"`
	Total        float64   `json:"total"`
	Items        []Item    `json:"items,omitempty"`
	// SaleID links the sale created by conversion. A quotation that already
	// carries one refuses a second conversion.
	SaleID *int64 `json:"sale_id,omitempty"`
}

// Expired reports whether the quotation's validity window has passed. The
// engine never blocks actions on expiry by itself; callers surface a warning.
func (q *Quotation) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}

// Converted reports whether a sale has already been created from this
// quotation.
func (q *Quotation) Converted() bool {
	return q.Status == StatusConverted || q.SaleID != nil
}

// SaleRef identifies the sale created by converting a quotation.
type SaleRef struct {
	SaleID int64  `json:"sale_id"`
	Number string `json:"number,omitempty"`
}
