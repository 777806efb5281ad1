package store

import "golang.org/x/crypto/bcrypt"

// Credentials turns a password into its stored form and checks a login
// attempt against it.
type Credentials interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// PlainCredentials stores passwords as given and compares them exactly.
type PlainCredentials struct{}

func (PlainCredentials) Hash(password string) (string, error) { return password, nil }

func (PlainCredentials) Compare(stored, password string) bool { return stored == password }

type BcryptCredentials struct {
	Cost int
}

func (b BcryptCredentials) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptCredentials) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// CredentialsFor maps a PASSWORD_MODE value to an implementation.
func CredentialsFor(mode string) Credentials {
	if mode == "bcrypt" {
		return BcryptCredentials{}
	}
	return PlainCredentials{}
}
