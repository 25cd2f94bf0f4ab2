package main

import (
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"

	"fstore-be/internal/config"
	"fstore-be/internal/messaging"
	"fstore-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDriver lets sql.Open succeed without postgres; no test here reaches a query.
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

func testServer(t *testing.T) http.Handler {
	t.Helper()
	database, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })

	cfg := &config.Config{
		AppPort:    "8080",
		AppEnv:     "test",
		JWTSecret:  "test-secret",
		CORSOrigin: "http://localhost:3000",
	}
	return newServer(cfg, database, messaging.NoopPublisher{}, stop)
}

func TestNewServer(t *testing.T) {
	h := testServer(t)

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/orders", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("anonymous order listing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDialBroker_NoURL(t *testing.T) {
	pub, closeFn := dialBroker(&config.Config{})

	assert.IsType(t, messaging.NoopPublisher{}, pub)
	assert.NotPanics(t, closeFn)
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origDial := dialBrokerFunc
	defer func() { dialBrokerFunc = origDial }()
	dialed := false
	dialBrokerFunc = func(cfg *config.Config) (order.EventPublisher, func()) {
		dialed = true
		return messaging.NoopPublisher{}, func() {}
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var gotAddr string
	startServerFunc = func(addr string, handler http.Handler) error {
		gotAddr = addr
		assert.NotNil(t, handler)
		return nil
	}

	t.Setenv("APP_PORT", "8081")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")

	assert.NoError(t, run())
	assert.True(t, dialed)
	assert.Equal(t, ":8081", gotAddr)
}
