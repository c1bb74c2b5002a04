package course

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Printf("migrate course: pgcrypto: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS courses (
          id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          creator_id  TEXT NOT NULL,
          title       TEXT NOT NULL,
          description TEXT NOT NULL DEFAULT '',
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("migrate course: courses: %v", err)
		return err
	}

	// Titles are unique per creator; the constraint lives in the database
	// so a concurrent double-create cannot slip past an existence check.
	if _, err := pool.Exec(ctx, `
      CREATE UNIQUE INDEX IF NOT EXISTS idx_courses_creator_title
      ON courses (creator_id, lower(title))
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS videos (
          id               uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          yt_video_id      TEXT UNIQUE NOT NULL,
          title            TEXT NOT NULL,
          description      TEXT NOT NULL DEFAULT '',
          yt_channel_id    TEXT NOT NULL DEFAULT '',
          yt_channel_title TEXT NOT NULL DEFAULT '',
          thumbnail_url    TEXT NOT NULL DEFAULT '',
          created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("migrate course: videos: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS course_videos (
          id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          course_id  uuid NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
          video_id   uuid NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
          position   INT NOT NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("migrate course: course_videos: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE UNIQUE INDEX IF NOT EXISTS idx_course_videos_course_video
      ON course_videos (course_id, video_id)
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE UNIQUE INDEX IF NOT EXISTS idx_course_videos_course_position
      ON course_videos (course_id, position)
    `); err != nil {
		return err
	}

	return nil
}
