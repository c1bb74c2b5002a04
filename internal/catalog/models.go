package catalog

// VideoSummary is one normalized search result, in the shape the course
// builder frontend consumes.
type VideoSummary struct {
	YTVideoID    string `json:"ytVideoId"`
	Title        string `json:"title"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumb_url_medium"`
}
