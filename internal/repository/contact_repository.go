package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"userhub/internal/model"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, submission *model.ContactSubmission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("create contact submission failed: %w", err)
	}
	return nil
}
