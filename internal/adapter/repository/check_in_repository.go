package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

type checkInRepository struct {
	db *gorm.DB
}

// NewCheckInRepository creates a new check-in repository
func NewCheckInRepository(db *gorm.DB) repositories.CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *entities.CheckIn) error {
	if err := r.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		return fmt.Errorf("failed to create check-in: %w", translate(err))
	}
	return nil
}
