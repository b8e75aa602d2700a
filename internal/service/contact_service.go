package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
	"github.com/akinfotech/rma-backend/internal/repository"
	"github.com/akinfotech/rma-backend/internal/validation"
)

// ContactService управляет справочником контактов.
type ContactService struct {
	repo *repository.ContactRepository
}

// NewContactService создаёт новый экземпляр.
func NewContactService(repo *repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func validateContact(name, email, phone string) error {
	if err := validation.ValidateContactName(name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePhone(phone); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

// Create добавляет контакт.
func (s *ContactService) Create(ctx context.Context, name, email, phone, company string) (*models.Contact, error) {
	if err := validateContact(name, email, phone); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Company: company,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Get возвращает контакт по идентификатору.
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает контакты.
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]models.Contact, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update обновляет контакт. Снимки контактных данных в уже созданных
// заявках при этом не меняются.
func (s *ContactService) Update(ctx context.Context, id uuid.UUID, name, email, phone, company string) (*models.Contact, error) {
	if err := validateContact(name, email, phone); err != nil {
		return nil, err
	}

	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Name = name
	contact.Email = email
	contact.Phone = phone
	contact.Company = company

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete удаляет контакт.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
