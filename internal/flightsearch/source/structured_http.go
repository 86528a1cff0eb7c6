package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/anonymous-127001/travel-agent/internal/flightsearch/entity"
)

// HTTPCatalog fetches structured records from a provider search endpoint.
type HTTPCatalog struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewHTTPCatalog(baseURL, apiKey string) *HTTPCatalog {
	return &HTTPCatalog{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPCatalog) Records(ctx context.Context, query entity.Query) ([]entity.StructuredRecord, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	u.Path = "/v1/flights/search"

	q := u.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("origin", query.Origin)
	q.Set("destination", query.Destination)
	q.Set("date", query.DepartureDate.Format("2006-01-02"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Network-level failures are worth one more try.
		return nil, fmt.Errorf("%w: %v", ErrTemporary, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 5 {
		return nil, fmt.Errorf("%w: provider http %d", ErrTemporary, resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("provider http %d", resp.StatusCode)
	}

	var r struct {
		Status  string                    `json:"status"`
		Flights []entity.StructuredRecord `json:"flights"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if r.Status != "" && r.Status != "success" {
		return nil, fmt.Errorf("provider status=%s", r.Status)
	}

	return r.Flights, nil
}
