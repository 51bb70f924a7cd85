package model

import "github.com/google/uuid"

// TokenStatus is the outcome of verifying a session token.
type TokenStatus int

const (
	// TokenMalformed covers garbage input and signature mismatch alike.
	TokenMalformed TokenStatus = iota
	// TokenExpired means the signature is intact but the expiry has passed.
	TokenExpired
	// TokenValid means the signature is intact and the token is not expired.
	TokenValid
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// TokenVerification is the tagged result of TokenManager.Verify.
// UserID is set only when Status is TokenValid.
type TokenVerification struct {
	Status TokenStatus
	UserID uuid.UUID
}

// TokenManager issues and verifies stateless session tokens.
type TokenManager interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) TokenVerification
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
	NeedsRehash(stored string) bool
}
