// Package password hashes and verifies user passwords.
//
// New hashes are argon2id, encoded in the PHC string format with the salt and
// parameters embedded:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// Verification also accepts bcrypt hashes so that accounts imported from
// older deployments keep working until their next login rehashes them.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/tasktracker-server/internal/model"
)

const (
	saltLen = 16
	keyLen  = 32
)

// Upper bounds accepted when decoding a stored hash. Anything above them is
// treated as malformed.
const (
	maxMemKiB = 1 << 20
	maxTime   = 32
	maxPar    = 64
	maxSalt   = 64
	maxKey    = 128
)

// ErrEmptyPassword is returned by Hash for an empty plaintext.
var ErrEmptyPassword = errors.New("password must not be empty")

// Params are argon2id cost parameters.
type Params struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

var _ model.PasswordHasher = (*Argon2)(nil)

// Argon2 implements PasswordHasher with argon2id.
type Argon2 struct {
	params Params
	rand   func([]byte) (int, error)
}

// NewArgon2 creates a hasher with the given cost parameters.
func NewArgon2(params Params) *Argon2 {
	return &Argon2{params: params, rand: rand.Read}
}

// Hash derives an argon2id key from plaintext with a fresh random salt.
func (a *Argon2) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLen)
	if _, err := a.rand(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, a.params.Time, a.params.MemKiB, a.params.Par, keyLen)

	return encode(a.params, salt, key), nil
}

// Verify reports whether plaintext matches stored. Malformed input yields false.
func (a *Argon2) Verify(plaintext, stored string) bool {
	if plaintext == "" || stored == "" {
		return false
	}

	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}

	params, salt, key, err := decode(stored)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, params.Time, params.MemKiB, params.Par, uint32(len(key)))

	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// NeedsRehash reports whether stored should be replaced by a fresh Hash:
// it is bcrypt, malformed, or weaker than the configured parameters.
func (a *Argon2) NeedsRehash(stored string) bool {
	if isBcrypt(stored) {
		return true
	}

	params, _, _, err := decode(stored)
	if err != nil {
		return true
	}

	return params.Time < a.params.Time || params.MemKiB < a.params.MemKiB || params.Par < a.params.Par
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemKiB, p.Time, p.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decode(stored string) (Params, []byte, []byte, error) {
	parts := strings.Split(stored, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, errors.New("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("failed to parse version: %w", err)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemKiB, &p.Time, &p.Par); err != nil {
		return Params{}, nil, nil, fmt.Errorf("failed to parse params: %w", err)
	}
	if p.Time == 0 || p.MemKiB == 0 || p.Par == 0 {
		return Params{}, nil, nil, errors.New("zero argon2 parameter")
	}
	if p.Time > maxTime || p.MemKiB > maxMemKiB || p.Par > maxPar {
		return Params{}, nil, nil, errors.New("argon2 parameters out of range")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 || len(salt) > maxSalt {
		return Params{}, nil, nil, errors.New("malformed salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxKey {
		return Params{}, nil, nil, errors.New("malformed key")
	}

	return p, salt, key, nil
}
