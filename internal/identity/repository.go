package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateUser(ctx context.Context, nu NewUser) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
	FindUserByUsername(ctx context.Context, username string) (User, error)
	FindUserByUsernameAndEmail(ctx context.Context, username, email string) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

// DBOps defines the subset of pgxpool.Pool methods we use.
// This allows us to inject a mock for testing.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBOps
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, nu NewUser) (User, error) {
	if nu.ImageURL == "" {
		nu.ImageURL = defaultImageURL
	}
	row := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password, first_name, last_name, image_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, username, email, password, first_name, last_name, image_url, created_at`,
		nu.Username, nu.Email, nu.PasswordHash, nu.FirstName, nu.LastName, nu.ImageURL,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicateUser
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT
        id, username, email, password, first_name, last_name, image_url, created_at
      FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) FindUserByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT
        id, username, email, password, first_name, last_name, image_url, created_at
      FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresRepository) FindUserByUsernameAndEmail(ctx context.Context, username, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT
        id, username, email, password, first_name, last_name, image_url, created_at
      FROM users WHERE username = $1 AND email = $2`, username, email)
	return scanUser(row)
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.ImageURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
