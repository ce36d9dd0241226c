package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork backed by gorm transactions
func NewUnitOfWork(db *gorm.DB) repositories.UnitOfWork {
	return &unitOfWork{db: db}
}

// Do commits when fn returns nil and rolls back otherwise (including on panic)
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repositories.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, repositories.TxRepositories{
			Meetings:     NewMeetingRepository(tx),
			HumeSessions: NewHumeSessionRepository(tx),
		})
	})
}
