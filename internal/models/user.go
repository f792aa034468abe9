package models

import (
	"time"
)

// User is an account allowed to update and delete AEDs. ID is an ObjectID
// hex string or a UUID depending on the credential store.
type User struct {
	ID           string    `json:"_id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Don't return password in JSON
}

// AccountSummary is what account endpoints return. Token is only filled on
// registration.
type AccountSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

func (u *User) Summary() AccountSummary {
	return AccountSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
