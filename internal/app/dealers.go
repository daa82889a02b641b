package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"dealerhub/internal/adapters/observability"
	"dealerhub/internal/domain"
)

// StateAll is the sentinel meaning "no state filter".
const StateAll = "All"

// DealerService is the gateway in front of the dealer/review backend
// and the sentiment analyzer. It holds no state beyond its collaborators
// and caches nothing across requests.
type DealerService struct {
	backend   domain.BackendClient
	analyzer  domain.SentimentClient
	enrichers int
}

func NewDealerService(b domain.BackendClient, a domain.SentimentClient, enrichers int) *DealerService {
	if enrichers <= 0 {
		enrichers = 1
	}
	return &DealerService{backend: b, analyzer: a, enrichers: enrichers}
}

// ListDealers returns all dealers, or only those in state when state is
// neither empty nor the "All" sentinel. Backend failures propagate
// unchanged; they are never collapsed into an empty list.
func (s *DealerService) ListDealers(ctx context.Context, state string) ([]domain.Dealer, error) {
	if state == "" || state == StateAll {
		return s.backend.ListDealers(ctx)
	}
	return s.backend.ListDealersByState(ctx, state)
}

// GetDealer returns one dealer. An empty payload from the backend means
// the dealer does not exist, which is distinct from the backend being
// unreachable.
func (s *DealerService) GetDealer(ctx context.Context, id int64) (domain.Dealer, error) {
	d, err := s.backend.GetDealer(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(d) == 0 {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// GetDealerReviews fetches a dealer's reviews and attaches a sentiment
// label to each. Classification runs per review with failure isolation:
// a failed or unusable classifier answer defaults that one review to
// "neutral" and never disturbs the rest. Output order is the backend's
// order regardless of classification completion order.
func (s *DealerService) GetDealerReviews(ctx context.Context, dealerID int64) ([]domain.Review, error) {
	reviews, err := s.backend.ListDealerReviews(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, domain.ErrNotFound
	}

	var g errgroup.Group
	g.SetLimit(s.enrichers)
	for i := range reviews {
		rv := reviews[i] // each goroutine owns exactly one review map
		g.Go(func() error {
			text, _ := rv[domain.ReviewTextKey].(string)
			label, aerr := s.analyzer.Analyze(ctx, text)
			if aerr != nil || label == "" {
				observability.SentimentFallbacks.Inc()
				log.Warn().Int64("dealer_id", dealerID).Err(aerr).Msg("sentiment unavailable, defaulting to neutral")
				label = domain.SentimentNeutral
			}
			rv[domain.ReviewSentimentKey] = label
			return nil
		})
	}
	_ = g.Wait() // workers never fail; they fall back instead

	return reviews, nil
}

// SubmitReview forwards a review to the backend for an authenticated
// caller. Payloads missing any required field are rejected before any
// network call. The backend signals acceptance by echoing the saved
// review with its generated id; a response without an id is a failure.
func (s *DealerService) SubmitReview(ctx context.Context, sess domain.Session, payload map[string]any) error {
	if sess.Username == "" {
		return domain.ErrUnauthorized
	}

	var missing []string
	for _, f := range domain.RequiredReviewFields {
		if _, ok := payload[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Missing: missing}
	}

	resp, err := s.backend.InsertReview(ctx, payload)
	if err != nil {
		return err
	}
	if _, ok := resp["id"]; !ok {
		return fmt.Errorf("backend did not acknowledge review: response missing id")
	}
	log.Info().Str("user", sess.Username).Msg("review posted")
	return nil
}
