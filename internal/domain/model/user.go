package model

import "time"

// User represents a registered customer account.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}
