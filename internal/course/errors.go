package course

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a referenced course, video or
	// membership does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMember is the expected outcome of adding a video to a
	// course it already belongs to. Callers branch on it; nothing was
	// mutated.
	ErrAlreadyMember = errors.New("video already in course")

	// ErrDuplicateTitle is returned when a creator reuses one of their
	// own course titles. Other creators may use the same title.
	ErrDuplicateTitle = errors.New("course title already used by this creator")

	// ErrNoNeighbor is the expected outcome of swapping past either end
	// of a course. Nothing was mutated.
	ErrNoNeighbor = errors.New("no adjacent video at that position")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, so the storage boundary can translate races into domain
// outcomes instead of leaking raw constraint errors.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
