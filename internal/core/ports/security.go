package ports

import "github.com/99minutos/credential-service/internal/core/domain"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, nil) on mismatch and an error only when the hash
	// itself is malformed.
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenVerifier checks a bearer token and returns its claim.
type TokenVerifier interface {
	Verify(token string) (domain.CredentialClaim, error)
}
