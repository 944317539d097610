package repo

import (
	"context"

	dom "Lucky/internal/domain"
)

// AccountRepo provides account persistence.
type AccountRepo interface {
	Create(ctx context.Context, email, password string) (dom.Account, error)
	GetByCredentials(ctx context.Context, email, password string) (dom.Account, error)
	GetByID(ctx context.Context, id int64) (dom.Account, error)
	// UpdateCredits overwrites the balance. There is no version check: the last write wins.
	UpdateCredits(ctx context.Context, id, credits int64) error
	List(ctx context.Context) ([]dom.Account, error)
}

// PGAccountRepo implements AccountRepo with Postgres.
type PGAccountRepo struct {
	db DBTX
}

// NewPGAccountRepo returns a new PGAccountRepo.
func NewPGAccountRepo(db DBTX) *PGAccountRepo {
	return &PGAccountRepo{db: db}
}

// Create inserts a new account with the default balance and returns it.
func (r *PGAccountRepo) Create(ctx context.Context, email, password string) (dom.Account, error) {
	query := `INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, email, password, credits`
	var a dom.Account
	err := r.db.QueryRow(ctx, query, email, password).Scan(&a.ID, &a.Email, &a.Password, &a.Credits)
	return a, err
}

// GetByCredentials returns the account whose email and password both match exactly.
func (r *PGAccountRepo) GetByCredentials(ctx context.Context, email, password string) (dom.Account, error) {
	var a dom.Account
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password, credits FROM users WHERE email = $1 AND password = $2 LIMIT 1`,
		email, password,
	).Scan(&a.ID, &a.Email, &a.Password, &a.Credits)
	return a, err
}

// GetByID returns the account by id.
func (r *PGAccountRepo) GetByID(ctx context.Context, id int64) (dom.Account, error) {
	var a dom.Account
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password, credits FROM users WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Email, &a.Password, &a.Credits)
	return a, err
}

func (r *PGAccountRepo) UpdateCredits(ctx context.Context, id, credits int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET credits = $2 WHERE id = $1`, id, credits)
	return err
}

func (r *PGAccountRepo) List(ctx context.Context) ([]dom.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email, password, credits FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Account
	for rows.Next() {
		var a dom.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Password, &a.Credits); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
