package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/ventadesk/ventadesk/internal/platform/rest"
)

// Repository is the quotation side of the service of record. Every mutation is
// a single request/response; there is no partial-completion state to protect.
type Repository interface {
	List(ctx context.Context, page, size int) (*ListPage, error)
	Get(ctx context.Context, id int64) (*Quotation, error)
	Create(ctx context.Context, draft Quotation) (*Quotation, error)
	Send(ctx context.Context, id int64, req SendRequest) error
	Accept(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	Convert(ctx context.Context, id int64) (*SaleRef, error)
	FetchPDF(ctx context.Context, id int64) ([]byte, string, error)
}

// Wire shapes of the ventas backend (Spring-style pagination, Spanish field
// names and status values).

type cotizacionItemDTO struct {
	ProductoID     int64   `json:"productoId"`
	NombreProducto string  `json:"nombreProducto"`
	PrecioUnitario float64 `json:"precioUnitario"`
	Cantidad       int     `json:"cantidad"`
	Subtotal       float64 `json:"subtotal"`
}

type cotizacionDTO struct {
	ID              int64               `json:"id"`
	NumCotizacion   string              `json:"numCotizacion"`
	ClienteID       int64               `json:"clienteId"`
	ClienteNombre   string              `json:"clienteNombre"`
	VendedorID      int64               `json:"vendedorId"`
	ValidezDias     int                 `json:"validezDias"`
	Estado          string              `json:"estado"`
	FechaCotizacion time.Time           `json:"fechaCotizacion"`
	FechaExpiracion time.Time           `json:"fechaExpiracion"`
	Subtotal        float64             `json:"subtotal"`
	Impuesto        float64             `json:"impuesto"`
	TotalCotizado   float64             `json:"totalCotizado"`
	Items           []cotizacionItemDTO `json:"items,omitempty"`
	VentaID         *int64              `json:"ventaId,omitempty"`
}

type crearCotizacionRequest struct {
	ClienteID       int64               `json:"clienteId"`
	VendedorID      int64               `json:"vendedorId"`
	ValidezDias     int                 `json:"validezDias"`
	FechaExpiracion time.Time           `json:"fechaExpiracion"`
	Items           []cotizacionItemDTO `json:"items"`
}

type enviarCotizacionRequest struct {
	CotizacionID       int64  `json:"cotizacionId"`
	CorreoDestinatario string `json:"correoDestinatario"`
	NombreDestinatario string `json:"nombreDestinatario,omitempty"`
}

type paginaCotizaciones struct {
	Content       []cotizacionDTO `json:"content"`
	Number        int             `json:"number"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int             `json:"totalElements"`
}

type ventaCreadaDTO struct {
	VentaID       int64  `json:"ventaId"`
	NumeroVenta   string `json:"numeroVenta,omitempty"`
	CotizacionID  int64  `json:"cotizacionId,omitempty"`
	EstadoDestino string `json:"estado,omitempty"`
}

var statusFromWire = map[string]Status{
	"BORRADOR":  StatusDraft,
	"ENVIADA":   StatusSent,
	"ACEPTADA":  StatusAccepted,
	"RECHAZADA": StatusRejected,
}

func fromWire(d cotizacionDTO) Quotation {
	q := Quotation{
		ID:           d.ID,
		Number:       d.NumCotizacion,
		ClientID:     d.ClienteID,
		ClientName:   d.ClienteNombre,
		SellerID:     d.VendedorID,
		ValidityDays: d.ValidezDias,
		Status:       statusFromWire[d.Estado],
		CreatedAt:    d.FechaCotizacion,
		ExpiresAt:    d.FechaExpiracion,
		Subtotal:     d.Subtotal,
		Tax:          d.Impuesto,
		Total:        d.TotalCotizado,
		SaleID:       d.VentaID,
	}
	if q.Status == "" {
		q.Status = StatusDraft
	}
	if q.Status == StatusAccepted && q.SaleID != nil {
		q.Status = StatusConverted
	}
	for _, item := range d.Items {
		q.Items = append(q.Items, Item{
			ProductID:   item.ProductoID,
			ProductName: item.NombreProducto,
			UnitPrice:   item.PrecioUnitario,
			Quantity:    item.Cantidad,
			Subtotal:    item.Subtotal,
		})
	}
	return q
}

type ventasRepository struct {
	api *rest.Client
}

// NewVentasRepository builds a Repository backed by the ventas HTTP API.
func NewVentasRepository(api *rest.Client) Repository {
	return &ventasRepository{api: api}
}

func (r *ventasRepository) List(ctx context.Context, page, size int) (*ListPage, error) {
	var resp paginaCotizaciones
	path := fmt.Sprintf("/cotizaciones?page=%d&size=%d&sort=fechaCotizacion,desc", page, size)
	if err := r.api.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	out := &ListPage{
		Items:      make([]Quotation, 0, len(resp.Content)),
		Page:       resp.Number,
		TotalPages: resp.TotalPages,
		TotalItems: resp.TotalElements,
	}
	for _, d := range resp.Content {
		out.Items = append(out.Items, fromWire(d))
	}
	return out, nil
}

func (r *ventasRepository) Get(ctx context.Context, id int64) (*Quotation, error) {
	var d cotizacionDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/cotizaciones/%d", id), &d); err != nil {
		return nil, fmt.Errorf("get quotation %d: %w", id, err)
	}
	q := fromWire(d)
	return &q, nil
}

func (r *ventasRepository) Create(ctx context.Context, draft Quotation) (*Quotation, error) {
	req := crearCotizacionRequest{
		ClienteID:       draft.ClientID,
		VendedorID:      draft.SellerID,
		ValidezDias:     draft.ValidityDays,
		FechaExpiracion: draft.ExpiresAt,
	}
	for _, item := range draft.Items {
		req.Items = append(req.Items, cotizacionItemDTO{
			ProductoID:     item.ProductID,
			NombreProducto: item.ProductName,
			PrecioUnitario: item.UnitPrice,
			Cantidad:       item.Quantity,
			Subtotal:       item.Subtotal,
		})
	}
	var d cotizacionDTO
	if err := r.api.Post(ctx, "/cotizaciones", req, &d); err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}
	q := fromWire(d)
	return &q, nil
}

func (r *ventasRepository) Send(ctx context.Context, id int64, req SendRequest) error {
	payload := enviarCotizacionRequest{
		CotizacionID:       id,
		CorreoDestinatario: req.RecipientEmail,
		NombreDestinatario: req.RecipientName,
	}
	if err := r.api.Post(ctx, "/cotizaciones/enviar", payload, nil); err != nil {
		return fmt.Errorf("send quotation %d: %w", id, err)
	}
	return nil
}

func (r *ventasRepository) Accept(ctx context.Context, id int64) error {
	// The acceptance endpoint takes an empty JSON body and returns none.
	if err := r.api.Post(ctx, fmt.Sprintf("/cotizaciones/%d/aceptacion", id), struct{}{}, nil); err != nil {
		return fmt.Errorf("accept quotation %d: %w", id, err)
	}
	return nil
}

func (r *ventasRepository) Reject(ctx context.Context, id int64) error {
	if err := r.api.Post(ctx, fmt.Sprintf("/cotizaciones/%d/rechazo", id), struct{}{}, nil); err != nil {
		return fmt.Errorf("reject quotation %d: %w", id, err)
	}
	return nil
}

func (r *ventasRepository) Convert(ctx context.Context, id int64) (*SaleRef, error) {
	var d ventaCreadaDTO
	if err := r.api.Post(ctx, fmt.Sprintf("/cotizaciones/%d/venta", id), struct{}{}, &d); err != nil {
		return nil, fmt.Errorf("convert quotation %d: %w", id, err)
	}
	return &SaleRef{SaleID: d.VentaID, Number: d.NumeroVenta}, nil
}

func (r *ventasRepository) FetchPDF(ctx context.Context, id int64) ([]byte, string, error) {
	data, contentType, err := r.api.GetBinary(ctx, fmt.Sprintf("/cotizaciones/%d/pdf", id))
	if err != nil {
		return nil, "", fmt.Errorf("fetch quotation pdf %d: %w", id, err)
	}
	return data, contentType, nil
}
