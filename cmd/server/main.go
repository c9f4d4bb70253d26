package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hardwarehub-be/internal/auth"
	"hardwarehub-be/internal/cart"
	"hardwarehub-be/internal/catalog"
	"hardwarehub-be/internal/config"
	"hardwarehub-be/internal/db"
	"hardwarehub-be/internal/handler"
	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/middleware"
	"hardwarehub-be/internal/notify"
	"hardwarehub-be/internal/order"
	"hardwarehub-be/internal/product"
	"hardwarehub-be/internal/report"
	"hardwarehub-be/internal/servicerequest"
	"hardwarehub-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
	limiterSweep    = time.Minute
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		logger.L().Warn("JWT_SECRET is empty, login and register will fail")
	}

	database := initDBFunc(cfg)
	defer database.Close()

	router, cleanup := newServer(cfg, database)
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires repositories, services and handlers. The returned func
// releases background workers and connections.
func newServer(cfg *config.Config, database *sql.DB) (*gin.Engine, func()) {
	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	tokens := auth.NewManager(cfg.JWTSecret, tokenTTL)
	hub := notify.NewHub()
	productCache, closeCache := newProductCache(cfg)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, productCache)

	userSvc := user.NewService(user.NewRepository(database), tokens)

	pricing := cart.NewPricing(cfg.TaxRate, cfg.ShippingFee, cfg.FreeShippingThreshold)
	cartSvc := cart.NewService(cart.NewRepository(database), productRepo, pricing)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartSvc, productSvc, hub)

	catalogSvc := catalog.NewService(catalog.NewRepository(database))
	requestSvc := servicerequest.NewService(servicerequest.NewRepository(database), catalogSvc, hub)

	reportSvc := report.NewService(report.NewRepository(database), orderRepo)

	h := handler.New(handler.Deps{
		Users:           userSvc,
		Products:        productSvc,
		Carts:           cartSvc,
		Orders:          orderSvc,
		ServiceRequests: requestSvc,
		Catalog:         catalogSvc,
		Reports:         reportSvc,
		WS:              notify.NewWSServer(hub, cfg.WSAllowedOrigins),
	})

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	stopSweep := make(chan struct{})
	go limiter.RunCleanup(limiterSweep, stopSweep)

	cleanup := func() {
		close(stopSweep)
		hub.Close()
		closeCache()
	}
	return setupRouter(h, tokens, limiter), cleanup
}

func newProductCache(cfg *config.Config) (product.ListCache, func()) {
	if cfg.RedisAddr == "" {
		return product.NewMemoryCache(cfg.ProductCacheTTL, cfg.ProductCacheMaxEntries), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	logger.L().Info("product list cache backed by redis", zap.String("addr", cfg.RedisAddr))
	return product.NewRedisCache(client, cfg.ProductCacheTTL), func() { _ = client.Close() }
}

func setupRouter(h *handler.Handler, tokens middleware.TokenParser, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.RequestID(),
		middleware.AccessLog(),
		middleware.Authenticate(tokens),
		limiter.Middleware(),
	)

	r.GET("/health", h.Health)

	h.Routes(r.Group("/api"))
	return r
}
