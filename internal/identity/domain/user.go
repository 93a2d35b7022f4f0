package domain

import "time"

// User owns daily logs and concepts. There is no authentication layer; the
// identity middleware resolves a user row per request from a header or the
// configured default.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
