package repositories

import (
	"context"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
)

// HumeSessionRepository persists summarized session records
type HumeSessionRepository interface {
	Create(ctx context.Context, session *entities.HumeSession) error
	// UpdateData rewrites the envelope column only
	UpdateData(ctx context.Context, session *entities.HumeSession) error
}
