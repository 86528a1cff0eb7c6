package source

import (
	"context"
	"errors"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

// ErrTemporary marks a fetch failure worth retrying. Anything else is treated
// as permanent for the current search.
var ErrTemporary = errors.New("temporary source error")

// Result is a source fetch outcome. Fallback reports that the source could
// not reach its real upstream and substituted a fixed record set: callers can
// then tell a degraded answer from a genuine one.
type Result struct {
	Records  []entity.RawRecord
	Fallback bool
}

// Source adapts one upstream record shape to the aggregation core. Fetch may
// block on I/O and must honor ctx cancellation.
type Source interface {
	Kind() entity.SourceKind
	Name() string
	Fetch(ctx context.Context, query entity.Query) (Result, error)
}
