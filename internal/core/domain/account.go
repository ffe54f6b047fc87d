package domain

import "time"

// Account is the administrative identity that manages blog content.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the subject carried by a verified session token.
type Identity struct {
	AccountID int64
	Username  string
}
