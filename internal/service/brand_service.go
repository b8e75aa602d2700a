package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
	"github.com/akinfotech/rma-backend/internal/repository"
	"github.com/akinfotech/rma-backend/internal/validation"
)

// BrandService управляет справочником брендов.
type BrandService struct {
	repo *repository.BrandRepository
}

// NewBrandService создаёт новый экземпляр.
func NewBrandService(repo *repository.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

// Create добавляет бренд, отклоняя дубликаты по названию.
func (s *BrandService) Create(ctx context.Context, name string) (*models.Brand, error) {
	if err := validation.ValidateBrandName(name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "бренд с таким названием уже существует")
	}

	brand := &models.Brand{Name: name}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// List возвращает все бренды.
func (s *BrandService) List(ctx context.Context) ([]models.Brand, error) {
	return s.repo.List(ctx)
}

// Delete удаляет бренд.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
