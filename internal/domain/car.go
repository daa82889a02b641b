package domain

import "time"

type CarMake struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CarModel struct {
	ID        int64
	MakeID    int64
	DealerID  int64
	Name      string
	Type      string // SEDAN | SUV | WAGON
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CarInfo is the read model served by the catalog endpoint.
type CarInfo struct {
	CarModel string `json:"CarModel"`
	CarMake  string `json:"CarMake"`
}
