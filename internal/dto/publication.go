package dto

import "time"

// PublicationResponse is the public micro-site view of a shared publication.
type PublicationResponse struct {
	ShareCode   string    `json:"share_code"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ImageURL    *string   `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
