package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"dealerhub/internal/domain"
)

// CatalogService reads the local make/model catalog and seeds it with
// the starter data the first time it is found empty.
type CatalogService struct {
	repo domain.CarRepository
}

func NewCatalogService(r domain.CarRepository) *CatalogService {
	return &CatalogService{repo: r}
}

func (s *CatalogService) GetCars(ctx context.Context) ([]domain.CarInfo, error) {
	n, err := s.repo.CountMakes(ctx)
	if err != nil {
		return nil, fmt.Errorf("count makes: %w", err)
	}
	if n == 0 {
		log.Info().Msg("car catalog empty, seeding starter data")
		if err := s.Seed(ctx); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return s.repo.ListCarInfo(ctx)
}

type seedModel struct {
	name string
	typ  string
	year int
}

var seedData = []struct {
	make        string
	description string
	models      []seedModel
}{
	{"NISSAN", "Innovative Japanese engineering", []seedModel{
		{"Pathfinder", "SUV", 2023}, {"Qashqai", "SUV", 2023}, {"XTRAIL", "SUV", 2023},
	}},
	{"Mercedes", "Premium German craftsmanship", []seedModel{
		{"A-Class", "SUV", 2023}, {"C-Class", "SUV", 2023}, {"E-Class", "SUV", 2023},
	}},
	{"Audi", "Precision German technology", []seedModel{
		{"A4", "SUV", 2023}, {"A5", "SUV", 2023}, {"A6", "SUV", 2023},
	}},
	{"Kia", "Advanced Korean engineering", []seedModel{
		{"Sorento", "SUV", 2023}, {"Carnival", "SUV", 2023}, {"Cerato", "SEDAN", 2023},
	}},
	{"Toyota", "Reliability of Japanese manufacturing", []seedModel{
		{"Corolla", "SEDAN", 2023}, {"Camry", "SEDAN", 2023}, {"Kluger", "SUV", 2023},
	}},
}

// Seed upserts the starter catalog. Safe to run repeatedly; existing
// rows are left in place.
func (s *CatalogService) Seed(ctx context.Context) error {
	for _, mk := range seedData {
		makeID, err := s.repo.UpsertMake(ctx, domain.CarMake{Name: mk.make, Description: mk.description})
		if err != nil {
			return fmt.Errorf("upsert make %s: %w", mk.make, err)
		}
		for _, md := range mk.models {
			m := domain.CarModel{MakeID: makeID, Name: md.name, Type: md.typ, Year: md.year}
			if err := s.repo.UpsertModel(ctx, m); err != nil {
				return fmt.Errorf("upsert model %s %s: %w", mk.make, md.name, err)
			}
		}
	}
	return nil
}
