package catalog

// Category classifies a product for combo discount purposes. Values match the
// service of record.
type Category string

const (
	CategoryMobileDevice  Category = "EQUIPO_MOVIL"
	CategoryHomeService   Category = "SERVICIO_HOGAR"
	CategoryMobileService Category = "SERVICIO_MOVIL"
	CategoryCombo         Category = "COMBO"
)

// ComboDiscount returns the discount fraction a category contributes inside a
// combo: 15% for mobile devices, 10% for everything else.
func (c Category) ComboDiscount() float64 {
	if c == CategoryMobileDevice {
		return 0.15
	}
	return 0.10
}

// Product is a catalog record. The engine never mutates products; stock is
// informational only.
type Product struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code,omitempty"`
	Category  Category `json:"category"`
	BasePrice float64  `json:"base_price"`
	Stock     int      `json:"stock"`
}

// ComboDefinition is a priced bundle of catalog products. Once created it is
// never mutated; corrections require a new combo.
type ComboDefinition struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	ProductIDs      []int64 `json:"product_ids"`
	BaseTotal       float64 `json:"base_total"`
	DiscountedTotal float64 `json:"discounted_total"`
	Savings         float64 `json:"savings"`
}
