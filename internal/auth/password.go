package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a customer or employee password. Callers pass
// the cost from AuthConfig.BcryptCost; tests use a low cost to stay fast.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored hash. A non-nil
// error means the credentials do not match; callers must not tell the client
// which part was wrong.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
