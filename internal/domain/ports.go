package domain

import "context"

// BackendClient talks to the external dealer/review backend.
type BackendClient interface {
	ListDealers(ctx context.Context) ([]Dealer, error)
	ListDealersByState(ctx context.Context, state string) ([]Dealer, error)
	GetDealer(ctx context.Context, id int64) (Dealer, error)
	ListDealerReviews(ctx context.Context, dealerID int64) ([]Review, error)
	InsertReview(ctx context.Context, payload map[string]any) (map[string]any, error)
}

// SentimentClient classifies a piece of free text.
type SentimentClient interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// InventoryClient searches the external car-inventory service.
type InventoryClient interface {
	SearchCars(ctx context.Context, endpoint string) ([]map[string]any, error)
}

type CarRepository interface {
	CountMakes(ctx context.Context) (int, error)
	UpsertMake(ctx context.Context, m CarMake) (int64, error)
	UpsertModel(ctx context.Context, m CarModel) error
	ListCarInfo(ctx context.Context) ([]CarInfo, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// SessionStore issues and revokes login sessions.
type SessionStore interface {
	Create(ctx context.Context, username string) (token string, err error)
	Lookup(ctx context.Context, token string) (Session, error)
	Revoke(ctx context.Context, token string) error
}
