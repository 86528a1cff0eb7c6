package pkgrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgerror"
)

type staticID struct{}

func (staticID) Generate() string { return "req-1" }

func TestRouterGETRendersJSON(t *testing.T) {
	rt := NewRouter(staticID{})
	rt.GET("/ping", func(ctx context.Context, r *http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterMapsValidationError(t *testing.T) {
	rt := NewRouter(staticID{})
	rt.GET("/bad", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, pkgerror.NewValidation([]pkgerror.FieldViolation{
			{Field: "origin", Reason: "must be a 3-letter airport code"},
			{Field: "passengers", Reason: "must be a positive integer"},
		})
	})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"origin"`)
	require.Contains(t, rec.Body.String(), `"passengers"`)
}

func TestRouterMapsBusinessError(t *testing.T) {
	rt := NewRouter(staticID{})
	rt.GET("/down", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, pkgerror.NewBusiness("all flight sources failed", pkgerror.CodeUnavailable)
	})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "all flight sources failed")
}

func TestRouterKeepsIncomingRequestID(t *testing.T) {
	rt := NewRouter(staticID{})
	rt.GET("/ping", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "upstream-7")
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, "upstream-7", rec.Header().Get("X-Request-Id"))
}
