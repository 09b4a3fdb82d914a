package domain

import "time"

// Account models a registered credential holder.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CredentialClaim is the verified payload of a bearer token. It lives only
// for the duration of a single authenticated request.
type CredentialClaim struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
