package model

import "time"

type User struct {
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Balance       float64   `json:"balance"`
	DownloadCount int       `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Profile is the authenticated user's view of their own account,
// returned by GET /api/users/me.
type Profile struct {
	Username      string     `json:"username"`
	Balance       float64    `json:"balance"`
	DownloadCount int        `json:"download_count"`
	Purchases     []Purchase `json:"purchases"`
}

type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
}
