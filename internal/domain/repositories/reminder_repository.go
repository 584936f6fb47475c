package repositories

import (
	"context"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// ReminderRepository stores recurring reminder schedules per user.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.ReminderSchedule) error
	ListActiveByUser(ctx context.Context, userID string) ([]*entities.ReminderSchedule, error)
	Deactivate(ctx context.Context, id string) error
}
