package service

import (
	"context"
	"errors"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/repository"
)

// SettingsStore описывает хранилище настроек.
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

// SettingsService отдаёт и сохраняет общие настройки сервиса.
type SettingsService struct {
	repo SettingsStore
}

// NewSettingsService создаёт новый экземпляр.
func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get возвращает текущие настройки, либо дефолтные, если строка ещё не создана.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return models.DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// Update сохраняет настройки целиком.
func (s *SettingsService) Update(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// RequireOTP возвращает флаг обязательности кода выдачи.
// Отсутствие настроек трактуется как включённая проверка.
func (s *SettingsService) RequireOTP(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.RequireOTP, nil
}
