package repositories

import (
	"context"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// ChatLogRepository persists completed chat exchanges. At most one write
// happens per logical chat call.
type ChatLogRepository interface {
	Create(ctx context.Context, log *entities.ChatLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.ChatLog, error)
}
