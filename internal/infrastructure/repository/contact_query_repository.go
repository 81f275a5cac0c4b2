package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

var _ domain.ContactFinder = (*ContactQueryRepository)(nil)

type ContactQueryRepository struct {
	db *gorm.DB
}

func NewContactQueryRepository(db *gorm.DB) *ContactQueryRepository {
	return &ContactQueryRepository{db: db}
}

func (r *ContactQueryRepository) FindByEmail(ctx context.Context, email string) (*domain.StoredContact, error) {
	var row models.Contact

	err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact by email: %w", err)
	}

	return &domain.StoredContact{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
