package quotation

// CreateQuotationRequest is the inbound payload for creating a quotation from
// a composed cart. Unit prices arrive snapshotted from the cart, not re-read
// from the catalog.
type CreateQuotationRequest struct {
	ClientID     int64               `json:"client_id" validate:"required,gt=0"`
	SellerID     int64               `json:"seller_id" validate:"required,gt=0"`
	ValidityDays int                 `json:"validity_days" validate:"gte=0"`
	Items        []CreateItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateItemRequest is one cart line in a create request.
type CreateItemRequest struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	ProductName string  `json:"product_name" validate:"required"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
}

// SendRequest addresses the quotation email. The service of record owns the
// actual dispatch; the engine only forwards the identifiers.
type SendRequest struct {
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	RecipientName  string `json:"recipient_name,omitempty"`
}

// ListPage is one page of quotations.
type ListPage struct {
	Items      []Quotation `json:"items"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	TotalItems int         `json:"total_items"`
}
