package catalog

import (
	"context"
	"fmt"

	"github.com/ventadesk/ventadesk/internal/platform/rest"
)

// Repository reads products from the service of record and registers new
// combos with it. The engine owns no catalog state of its own.
type Repository interface {
	// List returns every sellable product, combos included.
	List(ctx context.Context) ([]Product, error)
	// ListAvailable returns only individual (non-combo) products, the valid
	// member pool for new combos.
	ListAvailable(ctx context.Context) ([]Product, error)
	CreateCombo(ctx context.Context, combo ComboDefinition) (*ComboDefinition, error)
}

// Wire shapes of the ventas backend.
type productoDTO struct {
	ID         int64    `json:"id"`
	Nombre     string   `json:"nombre"`
	Codigo     string   `json:"codigo,omitempty"`
	Tipo       Category `json:"tipo"`
	PrecioBase float64  `json:"precioBase"`
	Stock      int      `json:"stock"`
}

type crearComboRequest struct {
	Nombre       string  `json:"nombre"`
	ProductosIDs []int64 `json:"productosIds"`
}

type comboDTO struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	PrecioBase  float64 `json:"precioBase"`
	PrecioFinal float64 `json:"precioFinal"`
}

type ventasRepository struct {
	api *rest.Client
}

// NewVentasRepository builds a Repository backed by the ventas HTTP API.
func NewVentasRepository(api *rest.Client) Repository {
	return &ventasRepository{api: api}
}

func (r *ventasRepository) List(ctx context.Context) ([]Product, error) {
	products, err := r.fetch(ctx, "/productos")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ventasRepository) ListAvailable(ctx context.Context) ([]Product, error) {
	products, err := r.fetch(ctx, "/productos/disponibles")
	if err != nil {
		return nil, fmt.Errorf("list available products: %w", err)
	}
	return products, nil
}

func (r *ventasRepository) fetch(ctx context.Context, path string) ([]Product, error) {
	var dtos []productoDTO
	if err := r.api.Get(ctx, path, &dtos); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, Product{
			ID:        d.ID,
			Name:      d.Nombre,
			Code:      d.Codigo,
			Category:  d.Tipo,
			BasePrice: d.PrecioBase,
			Stock:     d.Stock,
		})
	}
	return products, nil
}

func (r *ventasRepository) CreateCombo(ctx context.Context, combo ComboDefinition) (*ComboDefinition, error) {
	req := crearComboRequest{
		Nombre:       combo.Name,
		ProductosIDs: combo.ProductIDs,
	}
	var created comboDTO
	if err := r.api.Post(ctx, "/productos/combos", req, &created); err != nil {
		return nil, fmt.Errorf("create combo: %w", err)
	}

	// The backend recomputes totals as it persists; its figures win.
	combo.ID = created.ID
	if created.PrecioBase > 0 {
		combo.BaseTotal = created.PrecioBase
		combo.DiscountedTotal = created.PrecioFinal
		combo.Savings = created.PrecioBase - created.PrecioFinal
	}
	return &combo, nil
}
