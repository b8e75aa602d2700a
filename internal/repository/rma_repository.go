package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
)

// RMARepository отвечает за хранение заявок на возврат.
// Все смены статуса выполняются условным UPDATE по текущему статусу:
// конкурирующий переход просто не совпадёт по WHERE и вернёт 0 строк.
type RMARepository struct {
	db *sqlx.DB
}

// NewRMARepository создаёт новый экземпляр.
func NewRMARepository(db *sqlx.DB) *RMARepository {
	return &RMARepository{db: db}
}

const rmaColumns = `
	id, contact_id, contact_name, contact_email, contact_phone, contact_company,
	brand, model_number, serial_number, problems_reported, comments, custom_fields,
	status, remark, otp, is_ready, is_delivered, delivered_at, created_at, updated_at
`

// Create сохраняет новую заявку со статусом processing.
func (r *RMARepository) Create(ctx context.Context, rma *models.RMA) error {
	query := `
		INSERT INTO rmas (contact_id, contact_name, contact_email, contact_phone, contact_company,
		                  brand, model_number, serial_number, problems_reported, comments, custom_fields, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		rma.ContactID,
		rma.ContactName,
		rma.ContactEmail,
		rma.ContactPhone,
		rma.ContactCompany,
		rma.Brand,
		rma.ModelNumber,
		rma.SerialNumber,
		rma.ProblemsReported,
		rma.Comments,
		rma.CustomFields,
		rma.Status,
	).Scan(&rma.ID, &rma.CreatedAt, &rma.UpdatedAt); err != nil {
		return fmt.Errorf("rma repository: create %w", err)
	}
	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *RMARepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RMA, error) {
	var rma models.RMA
	query := `SELECT ` + rmaColumns + ` FROM rmas WHERE id = $1`
	if err := r.db.GetContext(ctx, &rma, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrRMANotFound
		}
		return nil, fmt.Errorf("rma repository: get by id %w", err)
	}
	return &rma, nil
}

// ListByStatus возвращает заявки в заданном статусе, новые первыми.
func (r *RMARepository) ListByStatus(ctx context.Context, status models.RMAStatus, limit, offset int) ([]models.RMA, error) {
	var rmas []models.RMA
	query := `SELECT ` + rmaColumns + ` FROM rmas WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rmas, query, status, limit, offset); err != nil {
		return nil, fmt.Errorf("rma repository: list by status %w", err)
	}
	return rmas, nil
}

// Search ищет заявки по контакту, бренду, модели, серийному номеру и префиксу id.
func (r *RMARepository) Search(ctx context.Context, query string, limit, offset int) ([]models.RMA, error) {
	var rmas []models.RMA
	pattern := "%" + query + "%"
	sqlQuery := `
		SELECT ` + rmaColumns + `
		FROM rmas
		WHERE contact_name ILIKE $1
		   OR brand ILIKE $1
		   OR model_number ILIKE $1
		   OR serial_number ILIKE $1
		   OR id::text ILIKE $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	if err := r.db.SelectContext(ctx, &rmas, sqlQuery, pattern, query+"%", limit, offset); err != nil {
		return nil, fmt.Errorf("rma repository: search %w", err)
	}
	return rmas, nil
}

// CountByStatus возвращает количество заявок по каждому статусу.
func (r *RMARepository) CountByStatus(ctx context.Context) (map[models.RMAStatus]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM rmas GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("rma repository: count by status %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RMAStatus]int)
	for rows.Next() {
		var status models.RMAStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("rma repository: scan count %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// MarkInServiceCentre переводит заявку processing -> in_service_centre.
// Возвращает false, если заявка не в processing или не существует.
func (r *RMARepository) MarkInServiceCentre(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rmas
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.StatusInServiceCentre, id, models.StatusProcessing)
	if err != nil {
		return false, fmt.Errorf("rma repository: mark in service centre %w", err)
	}
	return affected(res)
}

// UpdateRemark сохраняет заметку сервисного центра, статус не меняется.
func (r *RMARepository) UpdateRemark(ctx context.Context, id uuid.UUID, remark string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rmas
		SET remark = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, remark, id, models.StatusInServiceCentre)
	if err != nil {
		return false, fmt.Errorf("rma repository: update remark %w", err)
	}
	return affected(res)
}

// MarkReady переводит заявку in_service_centre -> ready и сохраняет код выдачи.
func (r *RMARepository) MarkReady(ctx context.Context, id uuid.UUID, remark, otp string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rmas
		SET status = $1, is_ready = TRUE, remark = $2, otp = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`, models.StatusReady, remark, otp, id, models.StatusInServiceCentre)
	if err != nil {
		return false, fmt.Errorf("rma repository: mark ready %w", err)
	}
	return affected(res)
}

// MarkDelivered переводит заявку ready -> delivered и фиксирует время выдачи.
func (r *RMARepository) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rmas
		SET status = $1, is_delivered = TRUE, delivered_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.StatusDelivered, id, models.StatusReady)
	if err != nil {
		return false, fmt.Errorf("rma repository: mark delivered %w", err)
	}
	return affected(res)
}

// Delete удаляет заявку без ограничений по статусу (административная операция).
func (r *RMARepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rmas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("rma repository: delete %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrRMANotFound
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rma repository: rows affected %w", err)
	}
	return n > 0, nil
}
