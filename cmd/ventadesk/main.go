package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ventadesk/ventadesk/internal/app"
	"github.com/ventadesk/ventadesk/internal/cart"
	"github.com/ventadesk/ventadesk/internal/catalog"
	"github.com/ventadesk/ventadesk/internal/observability"
	"github.com/ventadesk/ventadesk/internal/platform/cache"
	"github.com/ventadesk/ventadesk/internal/platform/rest"
	"github.com/ventadesk/ventadesk/internal/quotation"
	"github.com/ventadesk/ventadesk/internal/sale"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	// Redis is optional: without it the catalog cache is skipped and cart
	// sessions fall back to process-local storage.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", slog.Any("error", err))
		} else {
			redisClient = client
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
		}
	}

	ventasAPI := rest.NewClient(cfg.VentasAPIURL, cfg.VentasAPITimeout)

	var catalogCache *cache.JSONCache
	cartStore := cart.NewMemoryStore()
	if redisClient != nil {
		catalogCache = cache.NewJSONCache(redisClient, cfg.CatalogCacheTTL)
		cartStore = cart.NewRedisStore(cache.NewJSONCache(redisClient, cfg.CartSessionTTL))
	}

	catalogRepo := catalog.NewVentasRepository(ventasAPI)
	catalogService := catalog.NewService(logger, catalogRepo, catalogCache)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	cartService := cart.NewService(logger, cartStore, catalogService, cfg.TaxRate)
	cartHandler := cart.NewHandler(logger, cartService)

	quotationRepo := quotation.NewVentasRepository(ventasAPI)
	quotationService := quotation.NewService(logger, quotationRepo, cfg.TaxRate)
	quotationHandler := quotation.NewHandler(logger, quotationService)

	saleRepo := sale.NewVentasRepository(ventasAPI)
	saleService := sale.NewService(logger, saleRepo)
	saleHandler := sale.NewHandler(logger, saleService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalogHandler,
		CartHandler:      cartHandler,
		QuotationHandler: quotationHandler,
		SaleHandler:      saleHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
