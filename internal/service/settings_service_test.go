package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/repository"
)

type mockSettingsStore struct {
	mock.Mock
}

func (m *mockSettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *mockSettingsStore) Upsert(ctx context.Context, settings *models.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func TestSettingsService_Get_DefaultsWhenMissing(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	store.On("Get", ctx).Return(nil, repository.ErrSettingsNotFound)

	settings, err := svc.Get(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, settings)
	// Пока настройки не сохранены, проверка кода выдачи включена.
	assert.True(t, settings.RequireOTP)
}

func TestSettingsService_RequireOTP_ReadsStoredValue(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	store.On("Get", ctx).Return(&models.Settings{RequireOTP: false}, nil)

	required, err := svc.RequireOTP(ctx)

	assert.NoError(t, err)
	assert.False(t, required)
}

func TestSettingsService_Update_Upserts(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	input := &models.Settings{RequireOTP: false, EmailNotifications: true}
	store.On("Upsert", ctx, input).Return(nil)

	settings, err := svc.Update(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, input, settings)
	store.AssertCalled(t, "Upsert", ctx, input)
}
