// Package sale covers direct sale composition against the service of record:
// create a draft sale, persist the composed items, read authoritative totals,
// manage the assigned customer, and apply the best available discount.
package sale

// Customer identifies the buyer assigned to a sale. The DNI is the national
// identity number the discount engine keys on.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	DNI   string `json:"dni"`
	Email string `json:"email,omitempty"`
}

// Sale is a draft or completed sale as known by the service of record.
type Sale struct {
	ID       int64     `json:"id"`
	Number   string    `json:"number,omitempty"`
	Status   string    `json:"status,omitempty"`
	SellerID int64     `json:"seller_id,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

// Item is one composed line to be persisted on a sale.
type Item struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// Totals is the authoritative priced view of a sale. Discount reflects the
// currently applied discount, if any; applying another one supersedes it
// server-side rather than stacking.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// DiscountResult is the outcome of a best-discount application.
type DiscountResult struct {
	Kind             string  `json:"kind"`
	AmountDiscounted float64 `json:"amount_discounted"`
	NewTotal         float64 `json:"new_total"`
	Message          string  `json:"message,omitempty"`
}
