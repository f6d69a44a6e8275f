package models

import "time"

type Session struct {
	SessionID string    `json:"session_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
