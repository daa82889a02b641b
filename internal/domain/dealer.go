package domain

// Dealer and Review payloads are passed through from the external
// backend without reshaping, so unknown upstream fields survive the
// round trip. The only mutation this service ever makes is adding the
// "sentiment" key to each review.
type Dealer = map[string]any

type Review = map[string]any

// Review keys used by this service.
const (
	ReviewTextKey      = "review"
	ReviewSentimentKey = "sentiment"
)

// SentimentNeutral is the fallback label applied when the classifier
// is unavailable or returns an unusable answer.
const SentimentNeutral = "neutral"

// RequiredReviewFields are the keys a review submission must carry
// before it is forwarded to the backend.
var RequiredReviewFields = []string{
	"name",
	"dealership",
	"review",
	"purchase",
	"purchase_date",
	"car_make",
	"car_model",
	"car_year",
}
