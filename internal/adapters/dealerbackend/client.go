package dealerbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"dealerhub/internal/adapters/observability"
	"dealerhub/internal/domain"
)

const serviceName = "backend"

// Client wraps the external dealer/review backend. Every call applies
// the configured timeout and returns either decoded JSON, a
// domain.ErrNotFound, or a *domain.UpstreamError; it never retries so
// caller-side timeouts stay predictable.
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

func (c *Client) ListDealers(ctx context.Context) ([]domain.Dealer, error) {
	var out []domain.Dealer
	return out, c.get(ctx, "/fetchDealers", &out)
}

func (c *Client) ListDealersByState(ctx context.Context, state string) ([]domain.Dealer, error) {
	var out []domain.Dealer
	return out, c.get(ctx, "/fetchDealers/"+url.PathEscape(state), &out)
}

func (c *Client) GetDealer(ctx context.Context, id int64) (domain.Dealer, error) {
	var out domain.Dealer
	return out, c.get(ctx, fmt.Sprintf("/fetchDealer/%d", id), &out)
}

func (c *Client) ListDealerReviews(ctx context.Context, dealerID int64) ([]domain.Review, error) {
	var out []domain.Review
	return out, c.get(ctx, fmt.Sprintf("/fetchReviews/dealer/%d", dealerID), &out)
}

func (c *Client) InsertReview(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var out map[string]any
	return out, c.post(ctx, "/insert_review", payload, &out)
}

// ---- internals ----

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+endpoint, nil)
	if err != nil {
		return &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dealerhub/1.0")
	return c.do(req, endpoint, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return &domain.UpstreamError{Service: serviceName, Kind: domain.FailureDecode, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, bytes.NewReader(b))
	if err != nil {
		return &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "dealerhub/1.0")
	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()

	resp, err := c.hc.Do(req)
	if err != nil {
		if cerr := req.Context().Err(); cerr != nil {
			err = cerr
		}
		observability.ObserveExternal(serviceName, endpoint, 0, time.Since(start))
		log.Error().Str("endpoint", endpoint).Err(err).Msg("backend request failed")
		return &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	defer resp.Body.Close()

	observability.ObserveExternal(serviceName, endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Error().Str("endpoint", endpoint).Err(err).Msg("backend response decode failed")
			return &domain.UpstreamError{Service: serviceName, Kind: domain.FailureDecode, Err: err}
		}
		log.Info().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("backend request ok")
		return nil

	case http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		log.Info().Str("endpoint", endpoint).Msg("backend returned 404")
		return domain.ErrNotFound

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().Str("endpoint", endpoint).Int("status", resp.StatusCode).
			Str("body", strings.TrimSpace(string(b))).Msg("backend returned error status")
		return &domain.UpstreamError{Service: serviceName, Kind: domain.FailureHTTPStatus, Status: resp.StatusCode}
	}
}
