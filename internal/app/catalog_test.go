package app_test

import (
	"context"
	"testing"

	"dealerhub/internal/app"
	"dealerhub/internal/domain"
)

type fakeCarRepo struct {
	makes  map[string]int64
	models []domain.CarModel
	infos  []domain.CarInfo

	seedRuns int
	nextID   int64
}

func (f *fakeCarRepo) CountMakes(ctx context.Context) (int, error) {
	return len(f.makes), nil
}

func (f *fakeCarRepo) UpsertMake(ctx context.Context, m domain.CarMake) (int64, error) {
	if f.makes == nil {
		f.makes = map[string]int64{}
	}
	if id, ok := f.makes[m.Name]; ok {
		return id, nil
	}
	f.nextID++
	f.makes[m.Name] = f.nextID
	f.seedRuns++
	return f.nextID, nil
}

func (f *fakeCarRepo) UpsertModel(ctx context.Context, m domain.CarModel) error {
	f.models = append(f.models, m)
	return nil
}

func (f *fakeCarRepo) ListCarInfo(ctx context.Context) ([]domain.CarInfo, error) {
	if f.infos != nil {
		return f.infos, nil
	}
	byID := map[int64]string{}
	for name, id := range f.makes {
		byID[id] = name
	}
	out := make([]domain.CarInfo, 0, len(f.models))
	for _, m := range f.models {
		out = append(out, domain.CarInfo{CarModel: m.Name, CarMake: byID[m.MakeID]})
	}
	return out, nil
}

func TestGetCars_SeedsWhenEmpty(t *testing.T) {
	repo := &fakeCarRepo{}
	svc := app.NewCatalogService(repo)

	cars, err := svc.GetCars(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(cars) != 15 {
		t.Fatalf("expected 15 seeded models, got %d", len(cars))
	}
	if len(repo.makes) != 5 {
		t.Fatalf("expected 5 makes, got %d", len(repo.makes))
	}
}

func TestGetCars_SeedHappensOnce(t *testing.T) {
	repo := &fakeCarRepo{}
	svc := app.NewCatalogService(repo)

	if _, err := svc.GetCars(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := repo.seedRuns
	if _, err := svc.GetCars(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if repo.seedRuns != first {
		t.Fatalf("catalog reseeded on non-empty store: %d -> %d", first, repo.seedRuns)
	}
}
