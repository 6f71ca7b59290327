package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// codeSpan is the size of the 4-digit code space [1000, 9999].
const codeSpan = 9000

// Generate returns a 4-digit numeric passcode drawn uniformly from
// [1000, 9999] using the system CSPRNG.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

// ExpiryFrom computes the moment a code issued at now stops being accepted.
func ExpiryFrom(now time.Time, lifetime time.Duration) time.Time {
	return now.Add(lifetime)
}

// Expired reports whether a stored expiry has passed. A nil expiry counts as
// expired: a record without otpExpires must never verify.
func Expired(expires *time.Time, now time.Time) bool {
	if expires == nil {
		return true
	}
	return expires.Before(now)
}
