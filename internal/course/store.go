package course

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store uses. It allows injecting a
// mock for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// querier is satisfied by both DB and pgx.Tx, for helpers that run either
// inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store owns all persistence for courses, videos and the ordered
// memberships between them.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

// GetOrCreateVideo persists the video on first sight of its YouTube ID and
// is a no-op for a known one: stored metadata is never overwritten, even
// when the supplied fields differ.
func (s *Store) GetOrCreateVideo(ctx context.Context, nv NewVideo) (Video, error) {
	if _, err := s.db.Exec(ctx, `
		INSERT INTO videos (yt_video_id, title, description, yt_channel_id, yt_channel_title, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (yt_video_id) DO NOTHING
	`, nv.YTVideoID, nv.Title, nv.Description, nv.YTChannelID, nv.YTChannelTitle, nv.ThumbnailURL); err != nil {
		return Video{}, err
	}
	return s.FindVideoByExternalID(ctx, nv.YTVideoID)
}

func (s *Store) FindVideoByExternalID(ctx context.Context, ytVideoID string) (Video, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, yt_video_id, title, description, yt_channel_id, yt_channel_title, thumbnail_url, created_at
		FROM videos
		WHERE yt_video_id = $1
	`, ytVideoID)
	return scanVideo(row)
}

// DeleteVideoIfOrphaned removes the video row only when no course
// references it any more. Reports whether a row was deleted.
func (s *Store) DeleteVideoIfOrphaned(ctx context.Context, videoID string) (bool, error) {
	return deleteVideoIfOrphaned(ctx, s.db, videoID)
}

// deleteVideoIfOrphaned is guarded by a NOT EXISTS check so it can never
// delete a video while a membership still points at it. Call it after the
// last membership in question has been removed, inside the same
// transaction.
func deleteVideoIfOrphaned(ctx context.Context, q querier, videoID string) (bool, error) {
	tag, err := q.Exec(ctx, `
		DELETE FROM videos v
		WHERE v.id = $1
		  AND NOT EXISTS (SELECT 1 FROM course_videos cv WHERE cv.video_id = v.id)
	`, videoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanVideo(row pgx.Row) (Video, error) {
	var v Video
	err := row.Scan(
		&v.ID,
		&v.YTVideoID,
		&v.Title,
		&v.Description,
		&v.YTChannelID,
		&v.YTChannelTitle,
		&v.ThumbnailURL,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Video{}, ErrNotFound
		}
		return Video{}, err
	}
	return v, nil
}

func scanCourse(row pgx.Row) (Course, error) {
	var c Course
	err := row.Scan(
		&c.ID,
		&c.CreatorID,
		&c.Title,
		&c.Description,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	return c, nil
}
