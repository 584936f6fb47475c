package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/repositories"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
)

// ReminderAdapter implements reminder schedule persistence in Postgres.
type ReminderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReminderAdapter creates a new reminder adapter.
func NewReminderAdapter(client *postgres.Client) repositories.ReminderRepository {
	return &ReminderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new reminder schedule. An ID is generated when missing.
func (a *ReminderAdapter) Create(ctx context.Context, reminder *entities.ReminderSchedule) error {
	if reminder == nil {
		return apperrors.NewInternalError("reminder is nil", fmt.Errorf("reminder is nil"))
	}
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now().UTC()
	}
	reminder.Active = true

	record := goqu.Record{
		"id":          reminder.ID,
		"user_id":     reminder.UserID,
		"kind":        string(reminder.Kind),
		"owner_name":  reminder.OwnerName,
		"name":        reminder.Name,
		"dosage":      reminder.Dosage,
		"time_of_day": reminder.TimeOfDay,
		"active":      reminder.Active,
		"created_at":  reminder.CreatedAt,
	}

	query, args, err := a.db.Insert("reminders").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build reminder insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create reminder", err)
	}

	return nil
}

// ListActiveByUser returns the active reminder schedules for a user ordered
// by time of day.
func (a *ReminderAdapter) ListActiveByUser(ctx context.Context, userID string) ([]*entities.ReminderSchedule, error) {
	query, args, err := a.db.From("reminders").
		Select("id", "user_id", "kind", "owner_name", "name", "dosage", "time_of_day", "active", "created_at").
		Where(goqu.Ex{"user_id": userID, "active": true}).
		Order(goqu.I("time_of_day").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reminder list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reminders", err)
	}
	defer rows.Close()

	var reminders []*entities.ReminderSchedule
	for rows.Next() {
		var reminder entities.ReminderSchedule
		var kind string
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&kind,
			&reminder.OwnerName,
			&reminder.Name,
			&reminder.Dosage,
			&reminder.TimeOfDay,
			&reminder.Active,
			&reminder.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan reminder", err)
		}
		reminder.Kind = entities.ReminderKind(kind)
		reminders = append(reminders, &reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reminders", err)
	}

	return reminders, nil
}

// Deactivate marks a reminder schedule inactive so the daily summary stops
// including it.
func (a *ReminderAdapter) Deactivate(ctx context.Context, id string) error {
	query, args, err := a.db.Update("reminders").
		Set(goqu.Record{"active": false}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build reminder deactivate query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to deactivate reminder", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("no reminder found with id %s", id))
	}

	return nil
}
