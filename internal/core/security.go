// AngelaMos | 2026
// security.go

package core

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input limit. Anything past it is dropped
// before hashing and before comparison, identically on both paths.
const MaxPasswordBytes = 72

const passwordCost = bcrypt.DefaultCost

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(
		truncatePassword(password),
		passwordCost,
	)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. A
// malformed hash yields false, never an error.
func VerifyPassword(password, encodedHash string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(encodedHash),
		truncatePassword(password),
	)
	return err == nil
}

var dummyHash string

func init() {
	hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
}

// VerifyPasswordTimingSafe always pays for one bcrypt comparison so a
// missing account costs the same as a wrong password.
func VerifyPasswordTimingSafe(password string, encodedHash *string) bool {
	hashToVerify := dummyHash
	if encodedHash != nil && *encodedHash != "" {
		hashToVerify = *encodedHash
	}

	valid := VerifyPassword(password, hashToVerify)

	if encodedHash == nil || *encodedHash == "" {
		return false
	}

	return valid
}
