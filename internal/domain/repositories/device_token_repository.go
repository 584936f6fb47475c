package repositories

import (
	"context"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// DeviceTokenRepository stores push notification tokens per user.
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *entities.DeviceToken) error
	GetByUser(ctx context.Context, userID string) (*entities.DeviceToken, error)
	ListAll(ctx context.Context) ([]*entities.DeviceToken, error)
}
