package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/repositories"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
)

// DeviceTokenAdapter implements device token persistence in Postgres.
type DeviceTokenAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDeviceTokenAdapter creates a new device token adapter.
func NewDeviceTokenAdapter(client *postgres.Client) repositories.DeviceTokenRepository {
	return &DeviceTokenAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Upsert stores or replaces the token for a user. Registering a new token
// overwrites the previous one so each user keeps a single active device.
func (a *DeviceTokenAdapter) Upsert(ctx context.Context, token *entities.DeviceToken) error {
	if token == nil {
		return apperrors.NewInternalError("device token is nil", fmt.Errorf("device token is nil"))
	}
	if token.UpdatedAt.IsZero() {
		token.UpdatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"user_id":    token.UserID,
		"fcm_token":  token.Token,
		"updated_at": token.UpdatedAt,
	}

	query, args, err := a.db.Insert("device_tokens").
		Rows(record).
		OnConflict(goqu.DoUpdate("user_id", goqu.Record{
			"fcm_token":  token.Token,
			"updated_at": token.UpdatedAt,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build device token upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert device token", err)
	}

	return nil
}

// GetByUser returns the registered token for a user.
func (a *DeviceTokenAdapter) GetByUser(ctx context.Context, userID string) (*entities.DeviceToken, error) {
	query, args, err := a.db.From("device_tokens").
		Select("user_id", "fcm_token", "updated_at").
		Where(goqu.Ex{"user_id": userID}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build device token query", err)
	}

	var token entities.DeviceToken
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&token.UserID, &token.Token, &token.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewValidationError(fmt.Sprintf("no device token registered for user %s", userID))
		}
		return nil, apperrors.NewInternalError("failed to get device token", err)
	}

	return &token, nil
}

// ListAll returns every registered device token. Used by the daily summary
// broadcast.
func (a *DeviceTokenAdapter) ListAll(ctx context.Context) ([]*entities.DeviceToken, error) {
	query, args, err := a.db.From("device_tokens").
		Select("user_id", "fcm_token", "updated_at").
		Order(goqu.I("updated_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build device token list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list device tokens", err)
	}
	defer rows.Close()

	var tokens []*entities.DeviceToken
	for rows.Next() {
		var token entities.DeviceToken
		if err := rows.Scan(&token.UserID, &token.Token, &token.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan device token", err)
		}
		tokens = append(tokens, &token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate device tokens", err)
	}

	return tokens, nil
}
