package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dealerhub/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- car catalog ----

func (r *Repo) CountMakes(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countMakesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count makes: %w", err)
	}
	return n, nil
}

func (r *Repo) UpsertMake(ctx context.Context, m domain.CarMake) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertMakeSQL, m.Name, m.Description)
	if err != nil {
		return 0, fmt.Errorf("upsert make %s: %w", m.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) UpsertModel(ctx context.Context, m domain.CarModel) error {
	_, err := r.db.ExecContext(ctx, upsertModelSQL, m.MakeID, m.DealerID, m.Name, m.Type, m.Year)
	if err != nil {
		return fmt.Errorf("upsert model %s: %w", m.Name, err)
	}
	return nil
}

func (r *Repo) ListCarInfo(ctx context.Context) ([]domain.CarInfo, error) {
	rows, err := r.db.QueryContext(ctx, listCarInfoSQL)
	if err != nil {
		return nil, fmt.Errorf("list car info: %w", err)
	}
	defer rows.Close()

	var out []domain.CarInfo
	for rows.Next() {
		var ci domain.CarInfo
		if err := rows.Scan(&ci.CarModel, &ci.CarMake); err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	return out, rows.Err()
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email)
	if err != nil {
		return 0, fmt.Errorf("create user %s: %w", u.Username, err)
	}
	return res.LastInsertId()
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, getUserSQL, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", username, err)
	}
	return u, nil
}

func (r *Repo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, userExistsSQL, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("username exists %s: %w", username, err)
	}
	return exists, nil
}
