package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

type GetContactByEmailInput struct {
	Email string
}

type GetContactByEmailOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GetContactByEmail interface {
	Execute(ctx context.Context, in GetContactByEmailInput) (GetContactByEmailOutput, error)
}

type getContactByEmail struct {
	repo domain.ContactFinder
}

func NewGetContactByEmail(repo domain.ContactFinder) GetContactByEmail {
	return &getContactByEmail{repo: repo}
}

func (uc *getContactByEmail) Execute(ctx context.Context, in GetContactByEmailInput) (GetContactByEmailOutput, error) {
	email := domain.NormalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return GetContactByEmailOutput{}, ErrInvalidEmail
	}

	stored, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return GetContactByEmailOutput{}, ErrContactNotFound
		}
		return GetContactByEmailOutput{}, fmt.Errorf("%w: %v", ErrGetContact, err)
	}

	return GetContactByEmailOutput{
		ID:        stored.ID,
		Name:      stored.Name,
		Email:     stored.Email,
		Phone:     stored.Phone,
		UpdatedAt: stored.UpdatedAt,
	}, nil
}
