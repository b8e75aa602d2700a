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

// ContactRepository отвечает за справочник контактов.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository создаёт новый экземпляр.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create сохраняет контакт.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, email, phone, company)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, contact.Name, contact.Email, contact.Phone, contact.Company).
		Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return fmt.Errorf("contact repository: create %w", err)
	}
	return nil
}

// GetByID возвращает контакт по идентификатору.
func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	return common.GetByID[models.Contact](ctx, r.db, "contacts", id, apperror.ErrContactNotFound)
}

// List возвращает контакты, отсортированные по имени.
func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]models.Contact, error) {
	var contacts []models.Contact
	query := `SELECT * FROM contacts ORDER BY name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &contacts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("contact repository: list %w", err)
	}
	return contacts, nil
}

// Update обновляет контакт.
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, company = $4, updated_at = NOW()
		WHERE id = $5
	`, contact.Name, contact.Email, contact.Phone, contact.Company, contact.ID)
	if err != nil {
		return fmt.Errorf("contact repository: update %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact repository: rows affected %w", err)
	}
	if n == 0 {
		return apperror.ErrContactNotFound
	}
	return nil
}

// Delete удаляет контакт.
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contact repository: delete %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact repository: rows affected %w", err)
	}
	if n == 0 {
		return apperror.ErrContactNotFound
	}
	return nil
}
