package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

type humeSessionRepository struct {
	db *gorm.DB
}

// NewHumeSessionRepository creates a new session record repository
func NewHumeSessionRepository(db *gorm.DB) repositories.HumeSessionRepository {
	return &humeSessionRepository{db: db}
}

func (r *humeSessionRepository) Create(ctx context.Context, session *entities.HumeSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create hume session: %w", translate(err))
	}
	return nil
}

func (r *humeSessionRepository) UpdateData(ctx context.Context, session *entities.HumeSession) error {
	result := r.db.WithContext(ctx).Model(session).Update("data", session.Data)
	if result.Error != nil {
		return fmt.Errorf("failed to update hume session: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return entities.ErrHumeSessionNotFound
	}
	return nil
}
