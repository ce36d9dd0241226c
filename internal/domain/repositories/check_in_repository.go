package repositories

import (
	"context"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
)

// CheckInRepository persists client check-ins
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *entities.CheckIn) error
}
