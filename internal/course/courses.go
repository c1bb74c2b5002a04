package course

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// CreateCourse inserts a new course for the creator. A title the creator
// already used comes back as ErrDuplicateTitle, translated from the
// unique index rather than checked up front, so concurrent creates cannot
// race past each other.
func (s *Store) CreateCourse(ctx context.Context, creatorID, title, description string) (Course, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO courses (creator_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, creator_id, title, description, created_at
	`, creatorID, title, description)
	c, err := scanCourse(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Course{}, ErrDuplicateTitle
		}
		return Course{}, err
	}
	return c, nil
}

func (s *Store) GetCourse(ctx context.Context, courseID string) (Course, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, creator_id, title, description, created_at
		FROM courses
		WHERE id = $1
	`, courseID)
	return scanCourse(row)
}

// SearchCoursesByTitle matches the phrase case-insensitively as a
// substring across all creators. An empty phrase returns every course;
// matching nothing returns an empty slice, not an error.
func (s *Store) SearchCoursesByTitle(ctx context.Context, phrase string) ([]Course, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, creator_id, title, description, created_at
		FROM courses
		WHERE lower(title) LIKE '%' || lower($1) || '%'
		ORDER BY created_at DESC
	`, phrase)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (s *Store) ListCoursesByOwner(ctx context.Context, creatorID string) ([]Course, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, creator_id, title, description, created_at
		FROM courses
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

// DeleteCourse removes the course, cascades its memberships, and sweeps
// any of its videos that no longer belong to a course, all in one
// transaction.
func (s *Store) DeleteCourse(ctx context.Context, courseID string) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	videoIDs, err := memberVideoIDs(ctx, tx, courseID)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	// memberships are gone via ON DELETE CASCADE; sweep ex-members that
	// no other course still uses
	for _, vid := range videoIDs {
		if _, err := deleteVideoIfOrphaned(ctx, tx, vid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// PurgeOwner deletes every course the owner created, with the same
// cascade and orphan sweep as DeleteCourse. Used when the demo account is
// reprovisioned.
func (s *Store) PurgeOwner(ctx context.Context, ownerID string) error {
	courses, err := s.ListCoursesByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, c := range courses {
		if err := s.DeleteCourse(ctx, c.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

func memberVideoIDs(ctx context.Context, q querier, courseID string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT video_id FROM course_videos WHERE course_id = $1
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func collectCourses(rows pgx.Rows) ([]Course, error) {
	courses := make([]Course, 0)
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.CreatorID, &c.Title, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
