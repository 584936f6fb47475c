package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/repositories"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
)

// ChatLogAdapter implements chat log persistence in Postgres.
type ChatLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewChatLogAdapter creates a new chat log adapter.
func NewChatLogAdapter(client *postgres.Client) repositories.ChatLogRepository {
	return &ChatLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a chat log record.
func (a *ChatLogAdapter) Create(ctx context.Context, log *entities.ChatLog) error {
	if log == nil {
		return apperrors.NewInternalError("chat log is nil", fmt.Errorf("chat log is nil"))
	}

	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	record := goqu.Record{
		"id":         log.ID,
		"user_id":    log.UserID,
		"message":    log.Message,
		"response":   log.Response,
		"language":   log.Locale,
		"model_used": log.ProviderUsed,
		"created_at": log.CreatedAt,
	}

	query, args, err := a.db.Insert("chat_logs").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build chat log insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create chat log", err)
	}

	return nil
}

// ListByUser returns the most recent chat logs for a user, newest first.
func (a *ChatLogAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.ChatLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := a.db.From("chat_logs").
		Select("id", "user_id", "message", "response", "language", "model_used", "created_at").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build chat log list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list chat logs", err)
	}
	defer rows.Close()

	var logs []*entities.ChatLog
	for rows.Next() {
		var log entities.ChatLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.Message, &log.Response, &log.Locale, &log.ProviderUsed, &log.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan chat log", err)
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate chat logs", err)
	}

	return logs, nil
}
