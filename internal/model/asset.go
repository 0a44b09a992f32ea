package model

import "time"

type Asset struct {
	ID        int64     `json:"id"`
	BaseURL   string    `json:"base_url"`
	Salt      string    `json:"salt"`
	Extension string    `json:"extension"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// URL is the public location of the stored object.
func (a *Asset) URL() string {
	return a.BaseURL + "/" + a.Salt + "." + a.Extension
}
