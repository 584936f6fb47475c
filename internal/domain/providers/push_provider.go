package providers

import (
	"context"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// PushSender delivers push notifications to user devices.
type PushSender interface {
	// Send delivers one message to one device token.
	Send(ctx context.Context, msg entities.PushMessage) (*entities.DeliveryResult, error)

	// SendBulk delivers the same title/body to many tokens, returning one
	// result per token in input order.
	SendBulk(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]entities.DeliveryResult, error)
}
