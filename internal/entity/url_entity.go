package entity

import "time"

type ShortURL struct {
	URLID    string `json:"url_id"`
	URL      string `json:"url"`
	ShortURL string `json:"short_url,omitempty"`
	Shard    int    `json:"shard"`
}

type ShortenRequest struct {
	URL string `json:"url"`
}

// URLCreated is published once a short URL has been stored.
type URLCreated struct {
	URLID     string    `json:"url_id"`
	URL       string    `json:"url"`
	Shard     int       `json:"shard"`
	CreatedAt time.Time `json:"created_at"`
}
