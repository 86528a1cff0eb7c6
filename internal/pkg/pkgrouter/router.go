package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgerror"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkguid"
)

// HandlerFunc is the endpoint signature used by modules: it returns a payload
// to be rendered as JSON, or an error mapped to an HTTP status.
type HandlerFunc func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux *chi.Mux
	uid pkguid.StringID
}

func NewRouter(uid pkguid.StringID) *Router {
	r := &Router{mux: chi.NewRouter(), uid: uid}
	r.mux.Use(r.requestID)
	return r
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) GET(path string, h HandlerFunc) {
	rt.mux.Get(path, rt.wrap(h))
}

func (rt *Router) POST(path string, h HandlerFunc) {
	rt.mux.Post(path, rt.wrap(h))
}

func (rt *Router) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = rt.uid.Generate()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (rt *Router) wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := h(r.Context(), r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

type errorBody struct {
	Error  string                    `json:"error"`
	Fields []pkgerror.FieldViolation `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *pkgerror.Validation
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request", Fields: validation.Fields})
		return
	}

	var business *pkgerror.Business
	if errors.As(err, &business) {
		writeJSON(w, pkgerror.HTTPStatus(business.Code()), errorBody{Error: business.Error()})
		return
	}

	slog.ErrorContext(r.Context(), "unhandled endpoint error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
