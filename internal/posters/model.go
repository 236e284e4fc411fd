package posters

import "time"

// Poster is a gallery image. Ref and ThumbRef identify the blobs in
// storage; URLs are what the gallery embeds.
type Poster struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	ThumbURL      string    `json:"thumb_url"`
	Ref           string    `json:"-"`
	ThumbRef      string    `json:"-"`
	CreatedBy     int64     `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}
