package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ventadesk/ventadesk/internal/cart"
	"github.com/ventadesk/ventadesk/internal/catalog"
	"github.com/ventadesk/ventadesk/internal/observability"
	"github.com/ventadesk/ventadesk/internal/quotation"
	"github.com/ventadesk/ventadesk/internal/sale"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CatalogHandler   *catalog.Handler
	CartHandler      *cart.Handler
	QuotationHandler *quotation.Handler
	SaleHandler      *sale.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router for the JSON API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/catalog", params.CatalogHandler.MountRoutes)
		r.Route("/carts", params.CartHandler.MountRoutes)
		r.Route("/quotations", params.QuotationHandler.MountRoutes)
		r.Route("/sales", params.SaleHandler.MountRoutes)
	})

	return r
}
