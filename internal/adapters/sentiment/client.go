package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"dealerhub/internal/adapters/observability"
	"dealerhub/internal/domain"
)

const serviceName = "sentiment"

// Client calls the sentiment analyzer: GET {base}?text={text} returning
// {"sentiment": <label>}. One inbound review request fans out into one
// call per review, so the client rate-limits itself to stay polite to
// the analyzer.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, timeout time.Duration, rps int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Analyze returns the classifier's label for text. The label domain is
// opaque to this service; callers apply their own fallback on error.
func (c *Client) Analyze(ctx context.Context, text string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}

	reqURL := c.base + "?text=" + url.QueryEscape(text)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dealerhub/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
		observability.ObserveExternal(serviceName, "/analyze", 0, time.Since(start))
		log.Error().Err(err).Msg("sentiment request failed")
		return "", &domain.UpstreamError{Service: serviceName, Kind: domain.FailureNetwork, Err: err}
	}
	defer resp.Body.Close()

	observability.ObserveExternal(serviceName, "/analyze", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		log.Error().Int("status", resp.StatusCode).Msg("sentiment analyzer returned error status")
		return "", &domain.UpstreamError{Service: serviceName, Kind: domain.FailureHTTPStatus, Status: resp.StatusCode}
	}

	var body struct {
		Sentiment string `json:"sentiment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Error().Err(err).Msg("sentiment response decode failed")
		return "", &domain.UpstreamError{Service: serviceName, Kind: domain.FailureDecode, Err: err}
	}
	if body.Sentiment == "" {
		// 2xx with no usable label; treat like a decode failure so the
		// gateway applies its neutral fallback.
		return "", &domain.UpstreamError{Service: serviceName, Kind: domain.FailureDecode,
			Err: fmt.Errorf("response missing sentiment field")}
	}
	log.Info().Str("label", body.Sentiment).Msg("sentiment analyzed")
	return body.Sentiment, nil
}
