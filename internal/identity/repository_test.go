package identity

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func setupMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("Failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return &PostgresRepository{db: mock}, mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "password", "first_name", "last_name", "image_url", "created_at"}
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "hash", "Alice", "Smith", defaultImageURL).
			WillReturnRows(pgxmock.NewRows(userColumns()).AddRow(
				"user-1", "alice", "alice@example.com", "hash", "Alice", "Smith", defaultImageURL, time.Now(),
			))

		u, err := repo.CreateUser(context.Background(), NewUser{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hash",
			FirstName:    "Alice",
			LastName:     "Smith",
		})

		assert.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		// empty image falls back to the default avatar
		assert.Equal(t, defaultImageURL, u.ImageURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		_, err := repo.CreateUser(context.Background(), NewUser{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hash",
		})

		assert.ErrorIs(t, err, ErrDuplicateUser)
	})
}

func TestFindUserByUsername(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("SELECT(.|\\s)*FROM users WHERE username").
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows(userColumns()).AddRow(
				"user-1", "alice", "alice@example.com", "hash", "", "", defaultImageURL, time.Now(),
			))

		u, err := repo.FindUserByUsername(context.Background(), "alice")
		assert.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("SELECT(.|\\s)*FROM users WHERE username").
			WithArgs("nobody").
			WillReturnRows(pgxmock.NewRows(userColumns()))

		_, err := repo.FindUserByUsername(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestFindUserByUsernameAndEmail(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT(.|\\s)*FROM users WHERE username(.|\\s)*AND email").
		WithArgs("Demo", "demo@demo.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).AddRow(
			"demo-1", "Demo", "demo@demo.com", "hash", "Demo", "Demo", defaultImageURL, time.Now(),
		))

	u, err := repo.FindUserByUsernameAndEmail(context.Background(), "Demo", "demo@demo.com")
	assert.NoError(t, err)
	assert.Equal(t, "demo-1", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.DeleteUser(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
