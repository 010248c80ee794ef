package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the stored bcrypt hash for an account password. The
// cost comes from configuration so environments can trade hashing time for
// login latency.
func HashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether the password matches the stored hash. The
// comparison is constant-time; all failure modes read as a plain mismatch.
func VerifyPassword(storedHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
