package inbound

import (
	"context"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/usecase"
	"github.com/anonymous-127001/travel-agent/internal/pkg/pkgrouter"
)

type uc interface {
	SearchFlights(ctx context.Context, in usecase.SearchInput) (*usecase.SearchOutput, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/flights/search", end.SearchFlights)
}
