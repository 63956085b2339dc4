package models

import "time"

// Publication is a shareable post resolved by the public micro-site.
type Publication struct {
	ID          string    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"event_id"`
	ShareCode   string    `db:"share_code" json:"share_code"`
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	ImagePath   *string   `db:"image_path" json:"-"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
}
