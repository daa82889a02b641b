package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dealerhub/internal/app"
	"dealerhub/internal/domain"
)

// ---- fakes ----

type backendCalls struct {
	list, listState, get, reviews, insert int
}

type fakeBackend struct {
	dealers    []domain.Dealer
	dealer     domain.Dealer
	reviews    []domain.Review
	err        error
	insertResp map[string]any
	insertErr  error

	calls     backendCalls
	lastState string
}

func (f *fakeBackend) ListDealers(ctx context.Context) ([]domain.Dealer, error) {
	f.calls.list++
	return f.dealers, f.err
}

func (f *fakeBackend) ListDealersByState(ctx context.Context, state string) ([]domain.Dealer, error) {
	f.calls.listState++
	f.lastState = state
	return f.dealers, f.err
}

func (f *fakeBackend) GetDealer(ctx context.Context, id int64) (domain.Dealer, error) {
	f.calls.get++
	return f.dealer, f.err
}

func (f *fakeBackend) ListDealerReviews(ctx context.Context, dealerID int64) ([]domain.Review, error) {
	f.calls.reviews++
	return f.reviews, f.err
}

func (f *fakeBackend) InsertReview(ctx context.Context, payload map[string]any) (map[string]any, error) {
	f.calls.insert++
	return f.insertResp, f.insertErr
}

// fakeAnalyzer answers from a text->label table; unknown texts fail.
type fakeAnalyzer struct {
	mu     sync.Mutex
	labels map[string]string
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls++
	label, ok := f.labels[text]
	f.mu.Unlock()
	if !ok {
		return "", &domain.UpstreamError{Service: "sentiment", Kind: domain.FailureNetwork, Err: errors.New("boom")}
	}
	return label, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func authedSession() domain.Session { return domain.Session{Token: "t", Username: "ana"} }

func validPayload() map[string]any {
	return map[string]any{
		"name":          "Ana",
		"dealership":    37,
		"review":        "Great car buying experience",
		"purchase":      true,
		"purchase_date": "02/04/2024",
		"car_make":      "Toyota",
		"car_model":     "Camry",
		"car_year":      2023,
	}
}

// ---- review aggregation & enrichment ----

func TestGetDealerReviews_AllClassified(t *testing.T) {
	be := &fakeBackend{reviews: []domain.Review{
		{"id": 1.0, "review": "Great car buying experience"},
		{"id": 2.0, "review": "Terrible service"},
		{"id": 3.0, "review": "It was fine"},
	}}
	an := &fakeAnalyzer{labels: map[string]string{
		"Great car buying experience": "positive",
		"Terrible service":            "negative",
		"It was fine":                 "neutral",
	}}
	svc := app.NewDealerService(be, an, 4)

	out, err := svc.GetDealerReviews(context.Background(), 37)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(out))
	}
	want := []string{"positive", "negative", "neutral"}
	for i, rv := range out {
		if rv["sentiment"] != want[i] {
			t.Fatalf("review %d: expected %s, got %v", i, want[i], rv["sentiment"])
		}
	}
	// order matches the source order
	for i, id := range []float64{1.0, 2.0, 3.0} {
		if out[i]["id"] != id {
			t.Fatalf("order broken at %d: %+v", i, out[i])
		}
	}
	if an.callCount() != 3 {
		t.Fatalf("expected 3 classifier calls, got %d", an.callCount())
	}
}

func TestGetDealerReviews_ClassifierFailureFallsBackToNeutral(t *testing.T) {
	be := &fakeBackend{reviews: []domain.Review{
		{"id": 1.0, "review": "Great car buying experience"},
		{"id": 2.0, "review": "unclassifiable"},
		{"id": 3.0, "review": "Terrible service"},
	}}
	an := &fakeAnalyzer{labels: map[string]string{
		"Great car buying experience": "positive",
		"Terrible service":            "negative",
	}}
	svc := app.NewDealerService(be, an, 2)

	out, err := svc.GetDealerReviews(context.Background(), 37)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("failed classification must not drop reviews, got %d", len(out))
	}
	want := []string{"positive", "neutral", "negative"}
	for i, rv := range out {
		if rv["sentiment"] != want[i] {
			t.Fatalf("review %d: expected %s, got %v", i, want[i], rv["sentiment"])
		}
	}
}

func TestGetDealerReviews_AllClassifierCallsFail(t *testing.T) {
	be := &fakeBackend{reviews: []domain.Review{
		{"id": 1.0, "review": "a"},
		{"id": 2.0, "review": "b"},
	}}
	an := &fakeAnalyzer{labels: map[string]string{}}
	svc := app.NewDealerService(be, an, 4)

	out, err := svc.GetDealerReviews(context.Background(), 37)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i, rv := range out {
		if rv["sentiment"] != "neutral" {
			t.Fatalf("review %d: expected neutral, got %v", i, rv["sentiment"])
		}
	}
}

func TestGetDealerReviews_SourceFailureSkipsClassifier(t *testing.T) {
	be := &fakeBackend{err: &domain.UpstreamError{Service: "backend", Kind: domain.FailureNetwork, Err: errors.New("down")}}
	an := &fakeAnalyzer{labels: map[string]string{"x": "positive"}}
	svc := app.NewDealerService(be, an, 4)

	_, err := svc.GetDealerReviews(context.Background(), 37)
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected upstream failure, got %v", err)
	}
	if an.callCount() != 0 {
		t.Fatalf("expected zero classifier calls, got %d", an.callCount())
	}
}

func TestGetDealerReviews_EmptyIsNotFound(t *testing.T) {
	be := &fakeBackend{reviews: []domain.Review{}}
	an := &fakeAnalyzer{}
	svc := app.NewDealerService(be, an, 4)

	_, err := svc.GetDealerReviews(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if an.callCount() != 0 {
		t.Fatalf("expected zero classifier calls, got %d", an.callCount())
	}
}

// ---- dealer queries ----

func TestListDealers_StateFilter(t *testing.T) {
	be := &fakeBackend{dealers: []domain.Dealer{{"id": 1.0}}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	if _, err := svc.ListDealers(context.Background(), "CA"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if be.calls.listState != 1 || be.lastState != "CA" {
		t.Fatalf("expected one state-filtered call for CA, got %+v state=%q", be.calls, be.lastState)
	}
	if be.calls.list != 0 {
		t.Fatalf("unfiltered endpoint must not be hit, got %d calls", be.calls.list)
	}
}

func TestListDealers_AllSentinelUnfiltered(t *testing.T) {
	for _, state := range []string{"", "All"} {
		be := &fakeBackend{dealers: []domain.Dealer{{"id": 1.0}}}
		svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)
		if _, err := svc.ListDealers(context.Background(), state); err != nil {
			t.Fatalf("state %q: %v", state, err)
		}
		if be.calls.list != 1 || be.calls.listState != 0 {
			t.Fatalf("state %q: expected unfiltered call, got %+v", state, be.calls)
		}
	}
}

func TestListDealers_FailurePropagates(t *testing.T) {
	be := &fakeBackend{err: &domain.UpstreamError{Service: "backend", Kind: domain.FailureHTTPStatus, Status: 503}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	out, err := svc.ListDealers(context.Background(), "All")
	if err == nil {
		t.Fatalf("expected failure, got %v", out)
	}
}

func TestGetDealer_EmptyIsNotFound(t *testing.T) {
	be := &fakeBackend{dealer: domain.Dealer{}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	_, err := svc.GetDealer(context.Background(), 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---- review submission ----

func TestSubmitReview_MissingFieldsRejectedBeforeNetwork(t *testing.T) {
	be := &fakeBackend{insertResp: map[string]any{"id": 1.0}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	payload := validPayload()
	delete(payload, "purchase_date")
	delete(payload, "car_year")

	err := svc.SubmitReview(context.Background(), authedSession(), payload)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Missing) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", ve.Missing)
	}
	got := map[string]bool{}
	for _, f := range ve.Missing {
		got[f] = true
	}
	if !got["purchase_date"] || !got["car_year"] {
		t.Fatalf("wrong missing fields: %v", ve.Missing)
	}
	if be.calls.insert != 0 {
		t.Fatalf("invalid payload must not be forwarded, got %d calls", be.calls.insert)
	}
}

func TestSubmitReview_UnauthenticatedBeforeValidation(t *testing.T) {
	be := &fakeBackend{insertResp: map[string]any{"id": 1.0}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	// payload is also invalid; Unauthorized must win
	err := svc.SubmitReview(context.Background(), domain.Session{}, map[string]any{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if be.calls.insert != 0 {
		t.Fatalf("expected zero network calls, got %d", be.calls.insert)
	}
}

func TestSubmitReview_AcceptedWhenUpstreamEchoesID(t *testing.T) {
	be := &fakeBackend{insertResp: map[string]any{"id": 15.0, "name": "Ana"}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	if err := svc.SubmitReview(context.Background(), authedSession(), validPayload()); err != nil {
		t.Fatalf("err: %v", err)
	}
	if be.calls.insert != 1 {
		t.Fatalf("expected one insert call, got %d", be.calls.insert)
	}
}

func TestSubmitReview_RejectedWhenUpstreamOmitsID(t *testing.T) {
	be := &fakeBackend{insertResp: map[string]any{"status": "ok"}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	if err := svc.SubmitReview(context.Background(), authedSession(), validPayload()); err == nil {
		t.Fatal("expected failure for response without id")
	}
}

func TestSubmitReview_UpstreamFailurePropagates(t *testing.T) {
	be := &fakeBackend{insertErr: &domain.UpstreamError{Service: "backend", Kind: domain.FailureNetwork, Err: errors.New("down")}}
	svc := app.NewDealerService(be, &fakeAnalyzer{}, 1)

	err := svc.SubmitReview(context.Background(), authedSession(), validPayload())
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
