package main

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hardwarehub-be/internal/auth"
	"hardwarehub-be/internal/config"
	"hardwarehub-be/internal/handler"
	"hardwarehub-be/internal/middleware"
	"hardwarehub-be/internal/notify"
	"hardwarehub-be/internal/product"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetupRouter(t *testing.T) {
	hub := notify.NewHub()
	defer hub.Close()

	h := handler.New(handler.Deps{
		Products: product.NewService(nil, product.NewMemoryCache(time.Minute, 10)),
		WS:       notify.NewWSServer(hub, nil),
	})
	router := setupRouter(h, auth.NewManager("secret", time.Hour), middleware.NewRateLimiter(""))

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"OK"`)
		assert.Contains(t, rr.Body.String(), `"wsSubscribers":0`)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Protected route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/low-stock", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{
		AppPort:                "8080",
		AppEnv:                 "test",
		JWTSecret:              "secret",
		ProductCacheTTL:        time.Minute,
		ProductCacheMaxEntries: 10,
		TaxRate:                0.18,
		ShippingFee:            50,
		FreeShippingThreshold:  500,
	}

	t.Run("Memory cache", func(t *testing.T) {
		router, cleanup := newServer(cfg, db)
		defer cleanup()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Redis cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		redisCfg := *cfg
		redisCfg.RedisAddr = mr.Addr()

		router, cleanup := newServer(&redisCfg, db)
		defer cleanup()
		assert.NotNil(t, router)
	})

	t.Run("Money renders as numbers", func(t *testing.T) {
		_, cleanup := newServer(cfg, db)
		defer cleanup()

		out, err := json.Marshal(struct {
			Total any `json:"total"`
		}{Total: decimal.RequireFromString("708.00")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"total":708}`, string(out))
	})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var addr string
	startServerFunc = func(srv *http.Server) error {
		addr = srv.Addr
		return http.ErrServerClosed
	}

	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("JWT_SECRET", "secret")

	assert.NoError(t, run())
	assert.Equal(t, ":9090", addr)
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}
