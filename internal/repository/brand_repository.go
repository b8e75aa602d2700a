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

// BrandRepository отвечает за справочник брендов.
type BrandRepository struct {
	db *sqlx.DB
}

// NewBrandRepository создаёт новый экземпляр.
func NewBrandRepository(db *sqlx.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create сохраняет бренд.
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	query := `INSERT INTO brands (name) VALUES ($1) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, brand.Name).Scan(&brand.ID, &brand.CreatedAt); err != nil {
		return fmt.Errorf("brand repository: create %w", err)
	}
	return nil
}

// GetByID возвращает бренд по идентификатору.
func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return common.GetByID[models.Brand](ctx, r.db, "brands", id, apperror.ErrBrandNotFound)
}

// GetByName возвращает бренд по названию.
func (r *BrandRepository) GetByName(ctx context.Context, name string) (*models.Brand, error) {
	return common.GetByField[models.Brand](ctx, r.db, "brands", "name", name, apperror.ErrBrandNotFound)
}

// List возвращает все бренды по алфавиту.
func (r *BrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.SelectContext(ctx, &brands, `SELECT * FROM brands ORDER BY name`); err != nil {
		return nil, fmt.Errorf("brand repository: list %w", err)
	}
	return brands, nil
}

// Delete удаляет бренд.
func (r *BrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("brand repository: delete %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("brand repository: rows affected %w", err)
	}
	if n == 0 {
		return apperror.ErrBrandNotFound
	}
	return nil
}
