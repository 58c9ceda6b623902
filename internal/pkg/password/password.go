package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a bcrypt hash from a raw password.
func Hash(raw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether raw matches the stored bcrypt hash. bcrypt embeds
// its salt in the hash and compares in time proportional to the cost factor,
// not to where the inputs diverge. The raw password is never logged or returned.
func Verify(raw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) == nil
}
