package types

import "time"

// VideoType identifies how a video URL should be embedded.
type VideoType string

const (
	VideoTypeYouTube VideoType = "youtube"
	VideoTypeMP4     VideoType = "mp4"
)

// Valid reports whether v is a known video type.
func (v VideoType) Valid() bool {
	return v == VideoTypeYouTube || v == VideoTypeMP4
}

// Video represents a promotional or lecture video shown on the site.
type Video struct {
	ID        int       `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	Type      VideoType `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
