package contact

import (
	"strings"
	"time"
)

// Record is one normalized CSV row ready for reconciliation.
type Record struct {
	Name  string
	Email string
	Phone string
}

// StoredContact is the persisted contact keyed by its canonical email.
type StoredContact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail returns the canonical form used as the reconciliation key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewRecord(name, email, phone string) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, ErrMissingName
	}

	email = NormalizeEmail(email)
	if email == "" {
		return Record{}, ErrMissingEmail
	}

	return Record{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(phone),
	}, nil
}
