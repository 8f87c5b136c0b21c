package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	Upstream string `json:"upstream"`
	Path     string `json:"path"`
	Query    string `json:"query"`
	Proto    string `json:"proto"`
	Host     string `json:"host"`
}

func fakeUpstream(t *testing.T, name string, ready bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/ready" && !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(seen{
			Upstream: name,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			Proto:    r.Header.Get("X-Forwarded-Proto"),
			Host:     r.Header.Get("X-Forwarded-Host"),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, adminReady bool) *echo.Echo {
	t.Helper()
	e := echo.New()
	require.NoError(t, Register(e, &Deps{
		AdminURL:      fakeUpstream(t, "admin", adminReady).URL,
		StorefrontURL: fakeUpstream(t, "storefront", true).URL,
	}))
	return e
}

func TestRouting(t *testing.T) {
	t.Parallel()
	e := newGateway(t, true)

	tests := []struct {
		name     string
		path     string
		upstream string
		want     string
	}{
		{"admin prefix stripped", "/admin/products/7", "admin", "/products/7"},
		{"admin root", "/admin", "admin", "/"},
		{"storefront untouched", "/shop", "storefront", "/shop"},
		{"lookalike prefix", "/administrator", "storefront", "/administrator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path+"?sort=name", nil)
			req.Host = "cellar.example"
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var got seen
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.upstream, got.Upstream)
			assert.Equal(t, tt.want, got.Path)
			assert.Equal(t, "sort=name", got.Query)
			assert.Equal(t, "http", got.Proto)
			assert.Equal(t, "cellar.example", got.Host)
		})
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newGateway(t, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newGateway(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnreachableUpstream(t *testing.T) {
	t.Parallel()
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	e := echo.New()
	require.NoError(t, Register(e, &Deps{AdminURL: dead.URL, StorefrontURL: dead.URL}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
