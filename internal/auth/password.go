// Package auth hashes and verifies account passwords.
//
// New hashes are bcrypt. Verify also accepts the werkzeug formats
// ("pbkdf2:sha256:600000$salt$hex", "scrypt:32768:8:1$salt$hex") found in
// databases created before the bcrypt switch.
package auth

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// DefaultCost is used when Hasher.Cost is outside bcrypt's accepted range.
const DefaultCost = bcrypt.DefaultCost

// Upper bounds on legacy parameters read from stored hashes.
const (
	maxPBKDF2Iter  = 5_000_000
	maxScryptN     = 1 << 20
	maxScryptBytes = 256 << 20
)

// bcrypt reads at most 72 bytes, so longer passwords are hashed as bcrypt over
// base64(sha256(password)) and stored under this prefix.
const (
	bcryptMaxInput  = 72
	prehashedPrefix = "bcrypt-sha256$"
)

type Hasher struct {
	Cost int
}

func (h Hasher) cost() int {
	if h.Cost < bcrypt.MinCost || h.Cost > bcrypt.MaxCost {
		return DefaultCost
	}
	return h.Cost
}

// Hash returns a self-describing bcrypt hash of password. Passwords of any length are accepted.
func (h Hasher) Hash(password string) (string, error) {
	input, prefix := []byte(password), ""
	if len(input) > bcryptMaxInput {
		input, prefix = prehash(password), prehashedPrefix
	}
	b, err := bcrypt.GenerateFromPassword(input, h.cost())
	if err != nil {
		return "", err
	}
	return prefix + string(b), nil
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Verify reports whether password matches the stored hash. Malformed or
// unknown hashes never match.
func Verify(stored, password string) bool {
	switch {
	case IsBcrypt(stored):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	case strings.HasPrefix(stored, prehashedPrefix):
		inner := strings.TrimPrefix(stored, prehashedPrefix)
		return IsBcrypt(inner) && bcrypt.CompareHashAndPassword([]byte(inner), prehash(password)) == nil
	case strings.HasPrefix(stored, "pbkdf2:"):
		return verifyPBKDF2(stored, password)
	case strings.HasPrefix(stored, "scrypt:"):
		return verifyScrypt(stored, password)
	default:
		return false
	}
}

func IsBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// splitLegacy splits "method$salt$hexdigest".
func splitLegacy(stored string) (method []string, salt string, digest []byte, ok bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[1] == "" {
		return nil, "", nil, false
	}
	d, err := hex.DecodeString(parts[2])
	if err != nil || len(d) == 0 {
		return nil, "", nil, false
	}
	return strings.Split(parts[0], ":"), parts[1], d, true
}

func verifyPBKDF2(stored, password string) bool {
	method, salt, want, ok := splitLegacy(stored)
	if !ok || len(method) < 2 {
		return false
	}
	var h func() hash.Hash
	switch method[1] {
	case "sha1":
		h = sha1.New
	case "sha256":
		h = sha256.New
	case "sha512":
		h = sha512.New
	default:
		return false
	}
	iter := 600000
	if len(method) > 2 {
		n, err := strconv.Atoi(method[2])
		if err != nil || n < 1 || n > maxPBKDF2Iter {
			return false
		}
		iter = n
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iter, len(want), h)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func verifyScrypt(stored, password string) bool {
	method, salt, want, ok := splitLegacy(stored)
	if !ok {
		return false
	}
	n, r, p := 1<<15, 8, 1
	if len(method) == 4 {
		var err error
		if n, err = strconv.Atoi(method[1]); err != nil {
			return false
		}
		if r, err = strconv.Atoi(method[2]); err != nil {
			return false
		}
		if p, err = strconv.Atoi(method[3]); err != nil {
			return false
		}
	} else if len(method) != 1 {
		return false
	}
	if n <= 1 || n > maxScryptN || r < 1 || r > 64 || p < 1 || p > 64 {
		return false
	}
	if 128*int64(n)*int64(r)*int64(p) > maxScryptBytes {
		return false
	}
	got, err := scrypt.Key([]byte(password), []byte(salt), n, r, p, len(want))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
