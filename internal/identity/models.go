package identity

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// User is an account that may own courses. Username and email are both
// globally unique.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser carries the signup form fields.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	ImageURL     string
}

const defaultImageURL = "/static/images/default-pic.png"

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when the username or email is taken.
	ErrDuplicateUser = errors.New("username or email already taken")
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS users (
          id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          username   TEXT UNIQUE NOT NULL,
          email      TEXT UNIQUE NOT NULL,
          password   TEXT NOT NULL,
          first_name TEXT NOT NULL DEFAULT '',
          last_name  TEXT NOT NULL DEFAULT '',
          image_url  TEXT NOT NULL DEFAULT '`+defaultImageURL+`',
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("migrate identity: %v", err)
		return err
	}
	return nil
}
