package domain

import "time"

// User represents a registered account. PasswordHash holds either the current
// versioned credential format or a legacy value kept for fallback matching.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"isAdmin"`
	PasswordHash string    `json:"-"`
	AvatarPath   string    `json:"avatarPath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Reviews      []Review  `json:"reviews,omitempty"`
}
