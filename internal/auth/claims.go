package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the access token shape issued by the hosted auth backend.
// The subject is the user's uuid.
type Claims struct {
	jwt.RegisteredClaims

	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// UserMetadata is the profile data the user supplied at sign-up.
type UserMetadata struct {
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
