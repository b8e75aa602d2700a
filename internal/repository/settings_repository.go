package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/akinfotech/rma-backend/internal/models"
)

// ErrSettingsNotFound возвращается, если строка настроек ещё не создана.
var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository хранит единственную строку общих настроек.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository создаёт новый экземпляр.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get возвращает текущие настройки.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	query := `SELECT * FROM app_settings WHERE id = 1`
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("settings repository: get %w", err)
	}
	return &settings, nil
}

// Upsert сохраняет настройки, создавая строку при первом обращении.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO app_settings (id, require_otp, email_notifications, sms_notifications, auto_assign, dark_mode, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			require_otp = EXCLUDED.require_otp,
			email_notifications = EXCLUDED.email_notifications,
			sms_notifications = EXCLUDED.sms_notifications,
			auto_assign = EXCLUDED.auto_assign,
			dark_mode = EXCLUDED.dark_mode,
			updated_at = NOW()
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		settings.RequireOTP,
		settings.EmailNotifications,
		settings.SMSNotifications,
		settings.AutoAssign,
		settings.DarkMode,
	).Scan(&settings.UpdatedAt); err != nil {
		return fmt.Errorf("settings repository: upsert %w", err)
	}
	settings.ID = 1
	return nil
}
