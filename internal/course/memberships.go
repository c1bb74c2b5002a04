package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// swapSentinel is the placeholder position a membership parks on while two
// rows exchange slots. Positions are 1-based, so -1 can never collide with
// a live row under the unique (course_id, position) index.
const swapSentinel = -1

// AddVideo appends the video to the end of the course. Adding a video the
// course already contains returns ErrAlreadyMember and mutates nothing;
// existing memberships keep their positions either way.
func (s *Store) AddVideo(ctx context.Context, courseID, videoID string) (Membership, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Membership{}, err
	}
	defer tx.Rollback(ctx)

	// lock the course row to serialize concurrent appends
	var id string
	err = tx.QueryRow(ctx, `
		SELECT id FROM courses WHERE id = $1 FOR UPDATE
	`, courseID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Membership{}, ErrNotFound
	}
	if err != nil {
		return Membership{}, err
	}

	var memberID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM course_videos WHERE course_id = $1 AND video_id = $2
	`, courseID, videoID).Scan(&memberID)
	if err == nil {
		return Membership{}, ErrAlreadyMember
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Membership{}, err
	}

	var m Membership
	err = tx.QueryRow(ctx, `
		INSERT INTO course_videos (course_id, video_id, position)
		VALUES (
			$1, $2,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM course_videos WHERE course_id = $1)
		)
		RETURNING id, course_id, video_id, position, created_at
	`, courseID, videoID).Scan(&m.ID, &m.CourseID, &m.VideoID, &m.Position, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Membership{}, ErrAlreadyMember
		}
		return Membership{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Membership{}, err
	}
	return m, nil
}

// SwapAdjacent exchanges the video's position with its neighbor one slot
// later (direction +1) or earlier (direction -1). Swapping past either end
// returns ErrNoNeighbor and mutates nothing. All other memberships are
// untouched.
func (s *Store) SwapAdjacent(ctx context.Context, courseID, videoID string, direction int) (Membership, error) {
	if direction != 1 && direction != -1 {
		return Membership{}, fmt.Errorf("direction must be +1 or -1, got %d", direction)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Membership{}, err
	}
	defer tx.Rollback(ctx)

	var moverID string
	var moverPos int
	err = tx.QueryRow(ctx, `
		SELECT id, position
		FROM course_videos
		WHERE course_id = $1 AND video_id = $2
		FOR UPDATE
	`, courseID, videoID).Scan(&moverID, &moverPos)
	if errors.Is(err, pgx.ErrNoRows) {
		return Membership{}, ErrNotFound
	}
	if err != nil {
		return Membership{}, err
	}

	var neighborID string
	var neighborPos int
	err = tx.QueryRow(ctx, `
		SELECT id, position
		FROM course_videos
		WHERE course_id = $1 AND position = $2
		FOR UPDATE
	`, courseID, moverPos+direction).Scan(&neighborID, &neighborPos)
	if errors.Is(err, pgx.ErrNoRows) {
		return Membership{}, ErrNoNeighbor
	}
	if err != nil {
		return Membership{}, err
	}

	// Three-step exchange through the sentinel: the unique
	// (course_id, position) index checks each statement eagerly, so the
	// mover has to vacate its slot before the neighbor can take it.
	if _, err := tx.Exec(ctx, `
		UPDATE course_videos SET position = $2 WHERE id = $1
	`, moverID, swapSentinel); err != nil {
		return Membership{}, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE course_videos SET position = $2 WHERE id = $1
	`, neighborID, moverPos); err != nil {
		return Membership{}, err
	}

	var m Membership
	err = tx.QueryRow(ctx, `
		UPDATE course_videos SET position = $2 WHERE id = $1
		RETURNING id, course_id, video_id, position, created_at
	`, moverID, neighborPos).Scan(&m.ID, &m.CourseID, &m.VideoID, &m.Position, &m.CreatedAt)
	if err != nil {
		return Membership{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Membership{}, err
	}
	return m, nil
}

// RemoveVideo takes the video out of the course. When this was the video's
// only membership anywhere, the video row is deleted in the same
// transaction; a video shared with other courses stays. Remaining
// memberships after the removed slot shift down by one, restoring the
// contiguous 1..N run. Reports whether the video row itself was deleted.
func (s *Store) RemoveVideo(ctx context.Context, courseID, videoID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var memberID string
	var removedPos int
	err = tx.QueryRow(ctx, `
		SELECT id, position
		FROM course_videos
		WHERE course_id = $1 AND video_id = $2
		FOR UPDATE
	`, courseID, videoID).Scan(&memberID, &removedPos)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}

	// lock every membership of this video so the orphan decision cannot
	// race an add or remove in another course
	refs, err := lockVideoMemberships(ctx, tx, videoID)
	if err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM course_videos WHERE id = $1
	`, memberID); err != nil {
		return false, err
	}

	videoDeleted := false
	if refs == 1 {
		videoDeleted, err = deleteVideoIfOrphaned(ctx, tx, videoID)
		if err != nil {
			return false, err
		}
	}

	if err := renumberAfter(ctx, tx, courseID, removedPos); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return videoDeleted, nil
}

// ListOrdered returns the course's memberships joined with their video
// metadata, ascending by position. It is the source of truth for the
// current ordering when a swap or removal is requested.
func (s *Store) ListOrdered(ctx context.Context, courseID string) ([]CourseVideo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT cv.id, cv.course_id, cv.video_id, cv.position, cv.created_at,
		       v.id, v.yt_video_id, v.title, v.description,
		       v.yt_channel_id, v.yt_channel_title, v.thumbnail_url, v.created_at
		FROM course_videos cv
		JOIN videos v ON v.id = cv.video_id
		WHERE cv.course_id = $1
		ORDER BY cv.position ASC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CourseVideo, 0)
	for rows.Next() {
		var cv CourseVideo
		if err := rows.Scan(
			&cv.ID, &cv.CourseID, &cv.VideoID, &cv.Position, &cv.CreatedAt,
			&cv.Video.ID, &cv.Video.YTVideoID, &cv.Video.Title, &cv.Video.Description,
			&cv.Video.YTChannelID, &cv.Video.YTChannelTitle, &cv.Video.ThumbnailURL, &cv.Video.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, cv)
	}
	return items, rows.Err()
}

func lockVideoMemberships(ctx context.Context, tx pgx.Tx, videoID string) (int, error) {
	rows, err := tx.Query(ctx, `
		SELECT id FROM course_videos WHERE video_id = $1 FOR UPDATE
	`, videoID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	refs := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		refs++
	}
	return refs, rows.Err()
}

// renumberAfter decrements every membership past the removed position,
// lowest survivor first so the unique position index never sees a
// transient collision.
func renumberAfter(ctx context.Context, tx pgx.Tx, courseID string, removedPos int) error {
	rows, err := tx.Query(ctx, `
		SELECT id
		FROM course_videos
		WHERE course_id = $1 AND position > $2
		ORDER BY position ASC
	`, courseID, removedPos)
	if err != nil {
		return err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `
			UPDATE course_videos SET position = position - 1 WHERE id = $1
		`, id); err != nil {
			return err
		}
	}
	return nil
}
