package sale

import (
	"context"
	"fmt"

	"github.com/ventadesk/ventadesk/internal/platform/rest"
)

// Repository is the sale side of the service of record. Discount application
// carries no idempotency guarantee and is never retried here.
type Repository interface {
	Create(ctx context.Context, sellerID int64) (*Sale, error)
	Get(ctx context.Context, id int64) (*Sale, error)
	SaveItems(ctx context.Context, id int64, items []Item) error
	Totals(ctx context.Context, id int64) (*Totals, error)
	AssignCustomer(ctx context.Context, id, customerID int64) (*Sale, error)
	UnassignCustomer(ctx context.Context, id int64) error
	ApplyBestDiscount(ctx context.Context, id int64, customerDNI, couponCode string) (*DiscountResult, error)
}

// Wire shapes of the ventas backend.

type ventaDTO struct {
	ID            int64  `json:"id"`
	NumeroVenta   string `json:"numeroVenta,omitempty"`
	Estado        string `json:"estado,omitempty"`
	VendedorID    int64  `json:"vendedorId,omitempty"`
	ClienteID     *int64 `json:"clienteId,omitempty"`
	ClienteNombre string `json:"clienteNombre,omitempty"`
	ClienteDNI    string `json:"clienteDni,omitempty"`
	ClienteCorreo string `json:"clienteCorreo,omitempty"`
}

type crearVentaRequest struct {
	VendedorID int64 `json:"vendedorId"`
}

type ventaItemDTO struct {
	ProductoID     int64   `json:"productoId"`
	NombreProducto string  `json:"nombreProducto,omitempty"`
	PrecioUnitario float64 `json:"precioUnitario"`
	Cantidad       int     `json:"cantidad"`
}

type guardarProductosRequest struct {
	Productos []ventaItemDTO `json:"productos"`
}

type totalesVentaDTO struct {
	Subtotal   float64 `json:"subtotal"`
	IGV        float64 `json:"igv"`
	Descuento  float64 `json:"descuento"`
	TotalVenta float64 `json:"totalVenta"`
}

type asignarClienteRequest struct {
	ClienteID int64 `json:"clienteId"`
}

type aplicarDescuentoRequest struct {
	VentaID     int64  `json:"ventaId"`
	DNICliente  string `json:"dniCliente"`
	CodigoCupon string `json:"codigoCupon,omitempty"`
}

type descuentoAplicadoDTO struct {
	TipoDescuento   string  `json:"tipoDescuento"`
	MontoDescontado float64 `json:"montoDescontado"`
	NuevoTotalVenta float64 `json:"nuevoTotalVenta"`
	Mensaje         string  `json:"mensaje,omitempty"`
}

func saleFromWire(d ventaDTO) Sale {
	s := Sale{
		ID:       d.ID,
		Number:   d.NumeroVenta,
		Status:   d.Estado,
		SellerID: d.VendedorID,
	}
	if d.ClienteID != nil {
		s.Customer = &Customer{
			ID:    *d.ClienteID,
			Name:  d.ClienteNombre,
			DNI:   d.ClienteDNI,
			Email: d.ClienteCorreo,
		}
	}
	return s
}

type ventasRepository struct {
	api *rest.Client
}

// NewVentasRepository builds a Repository backed by the ventas HTTP API.
func NewVentasRepository(api *rest.Client) Repository {
	return &ventasRepository{api: api}
}

func (r *ventasRepository) Create(ctx context.Context, sellerID int64) (*Sale, error) {
	var d ventaDTO
	if err := r.api.Post(ctx, "/ventas", crearVentaRequest{VendedorID: sellerID}, &d); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	s := saleFromWire(d)
	return &s, nil
}

func (r *ventasRepository) Get(ctx context.Context, id int64) (*Sale, error) {
	var d ventaDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/ventas/%d", id), &d); err != nil {
		return nil, fmt.Errorf("get sale %d: %w", id, err)
	}
	s := saleFromWire(d)
	return &s, nil
}

func (r *ventasRepository) SaveItems(ctx context.Context, id int64, items []Item) error {
	req := guardarProductosRequest{Productos: make([]ventaItemDTO, 0, len(items))}
	for _, item := range items {
		req.Productos = append(req.Productos, ventaItemDTO{
			ProductoID:     item.ProductID,
			NombreProducto: item.ProductName,
			PrecioUnitario: item.UnitPrice,
			Cantidad:       item.Quantity,
		})
	}
	if err := r.api.Post(ctx, fmt.Sprintf("/ventas/%d/productos", id), req, nil); err != nil {
		return fmt.Errorf("save sale items %d: %w", id, err)
	}
	return nil
}

func (r *ventasRepository) Totals(ctx context.Context, id int64) (*Totals, error) {
	var d totalesVentaDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/ventas/%d/totales", id), &d); err != nil {
		return nil, fmt.Errorf("get sale totals %d: %w", id, err)
	}
	return &Totals{
		Subtotal: d.Subtotal,
		Tax:      d.IGV,
		Discount: d.Descuento,
		Total:    d.TotalVenta,
	}, nil
}

func (r *ventasRepository) AssignCustomer(ctx context.Context, id, customerID int64) (*Sale, error) {
	var d ventaDTO
	if err := r.api.Put(ctx, fmt.Sprintf("/ventas/%d/cliente", id), asignarClienteRequest{ClienteID: customerID}, &d); err != nil {
		return nil, fmt.Errorf("assign customer to sale %d: %w", id, err)
	}
	s := saleFromWire(d)
	return &s, nil
}

func (r *ventasRepository) UnassignCustomer(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/ventas/%d/cliente", id)); err != nil {
		return fmt.Errorf("unassign customer from sale %d: %w", id, err)
	}
	return nil
}

func (r *ventasRepository) ApplyBestDiscount(ctx context.Context, id int64, customerDNI, couponCode string) (*DiscountResult, error) {
	req := aplicarDescuentoRequest{
		VentaID:     id,
		DNICliente:  customerDNI,
		CodigoCupon: couponCode,
	}
	var d descuentoAplicadoDTO
	if err := r.api.Post(ctx, "/descuentos/aplicar-mejor-descuento", req, &d); err != nil {
		return nil, fmt.Errorf("apply discount to sale %d: %w", id, err)
	}
	return &DiscountResult{
		Kind:             d.TipoDescuento,
		AmountDiscounted: d.MontoDescontado,
		NewTotal:         d.NuevoTotalVenta,
		Message:          d.Mensaje,
	}, nil
}
