package domain

import "github.com/google/uuid"

// User is the identity of a signed-in visitor, taken from a verified token
// issued by the hosted auth backend. The backend owns accounts; this service
// never stores them.
type User struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Avatar  string    `json:"avatar,omitempty"`
	IsAdmin bool      `json:"isAdmin"`
}
