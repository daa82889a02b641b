package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"dealerhub/internal/adapters/observability"
	"dealerhub/internal/domain"
)

const serviceName = "inventory"

// Client queries the car-inventory search service. Endpoints are
// assembled by the inventory gateway (/cars/{id}, /carsbymake/... and
// friends); this adapter only moves JSON.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) SearchCars(ctx context.Context, endpoint string) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+endpoint, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dealerhub/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
		observability.ObserveExternal(serviceName, endpoint, 0, time.Since(start))
		log.Error().Str("endpoint", endpoint).Err(err).Msg("inventory request failed")
		return nil, &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	defer resp.Body.Close()

	observability.ObserveExternal(serviceName, endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		log.Error().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("inventory returned error status")
		return nil, &domain.UpstreamError{Service: serviceName, Kind: domain.FailureHTTPStatus, Status: resp.StatusCode}
	}

	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error().Str("endpoint", endpoint).Err(err).Msg("inventory response decode failed")
		return nil, &domain.UpstreamError{Service: serviceName, Kind: domain.FailureDecode, Err: err}
	}
	log.Info().Str("endpoint", endpoint).Int("cars", len(out)).Msg("inventory request ok")
	return out, nil
}
