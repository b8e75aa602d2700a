package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
	"github.com/akinfotech/rma-backend/internal/repository/common"
)

// CustomFieldRepository отвечает за описания настраиваемых полей анкеты.
type CustomFieldRepository struct {
	db *sqlx.DB
}

// NewCustomFieldRepository создаёт новый экземпляр.
func NewCustomFieldRepository(db *sqlx.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: db}
}

// Create сохраняет описание поля.
func (r *CustomFieldRepository) Create(ctx context.Context, def *models.CustomFieldDefinition) error {
	query := `
		INSERT INTO custom_field_definitions (name, label, type, required, default_value, options, description, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query,
		def.Name, def.Label, def.Type, def.Required, def.DefaultValue, def.Options, def.Description, def.SortOrder,
	).Scan(&def.ID, &def.CreatedAt); err != nil {
		return fmt.Errorf("custom field repository: create %w", err)
	}
	return nil
}

// GetByID возвращает описание поля по идентификатору.
func (r *CustomFieldRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomFieldDefinition, error) {
	return common.GetByID[models.CustomFieldDefinition](ctx, r.db, "custom_field_definitions", id, apperror.ErrFieldNotFound)
}

// List возвращает все описания полей в порядке сортировки.
func (r *CustomFieldRepository) List(ctx context.Context) ([]models.CustomFieldDefinition, error) {
	var defs []models.CustomFieldDefinition
	query := `SELECT * FROM custom_field_definitions ORDER BY sort_order, name`
	if err := r.db.SelectContext(ctx, &defs, query); err != nil {
		return nil, fmt.Errorf("custom field repository: list %w", err)
	}
	return defs, nil
}

// Update обновляет описание поля.
func (r *CustomFieldRepository) Update(ctx context.Context, def *models.CustomFieldDefinition) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE custom_field_definitions
		SET name = $1, label = $2, type = $3, required = $4, default_value = $5, options = $6, description = $7, sort_order = $8
		WHERE id = $9
	`, def.Name, def.Label, def.Type, def.Required, def.DefaultValue, def.Options, def.Description, def.SortOrder, def.ID)
	if err != nil {
		return fmt.Errorf("custom field repository: update %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("custom field repository: rows affected %w", err)
	}
	if n == 0 {
		return apperror.ErrFieldNotFound
	}
	return nil
}

// Delete удаляет описание поля.
func (r *CustomFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_field_definitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("custom field repository: delete %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("custom field repository: rows affected %w", err)
	}
	if n == 0 {
		return apperror.ErrFieldNotFound
	}
	return nil
}
