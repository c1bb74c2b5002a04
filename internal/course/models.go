package course

import (
	"time"
)

// Course is a named, ordered playlist of videos curated by one user.
// Titles are unique per creator, not globally.
type Course struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creatorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Video is YouTube metadata stored once per provider video ID and shared
// across courses through memberships. It is created lazily on first add
// and deleted once no course references it.
type Video struct {
	ID             string    `json:"id"`
	YTVideoID      string    `json:"ytVideoId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	YTChannelID    string    `json:"ytChannelId"`
	YTChannelTitle string    `json:"ytChannelTitle"`
	ThumbnailURL   string    `json:"thumbnailUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Membership ties one video into one course. Positions are 1-based and
// stay a contiguous run 1..N within the course after every mutation.
type Membership struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	VideoID   string    `json:"videoId"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseVideo is a membership joined with its video metadata, in the shape
// the course edit and details pages render.
type CourseVideo struct {
	Membership
	Video Video `json:"video"`
}

// NewVideo carries the metadata a catalog search result supplies when a
// video is added to a course for the first time.
type NewVideo struct {
	YTVideoID      string `json:"ytVideoId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	YTChannelID    string `json:"channelId"`
	YTChannelTitle string `json:"channelTitle"`
	ThumbnailURL   string `json:"thumbnailUrl"`
}
