package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMismatch = errors.New("password mismatch")
	ErrTooLong  = errors.New("password too long")
)

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", err
	}
	return string(hashed), nil
}

// Compare returns ErrMismatch when plain does not match hash. Any other error
// means the stored hash is unusable.
func Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
