package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
	"github.com/akinfotech/rma-backend/internal/validation"
)

// FieldDefinitionStore описывает хранилище описаний полей.
type FieldDefinitionStore interface {
	Create(ctx context.Context, def *models.CustomFieldDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomFieldDefinition, error)
	List(ctx context.Context) ([]models.CustomFieldDefinition, error)
	Update(ctx context.Context, def *models.CustomFieldDefinition) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomFieldService управляет схемой анкеты приёма и проверяет
// значения полей входящих заявок против этой схемы.
type CustomFieldService struct {
	repo FieldDefinitionStore
}

// NewCustomFieldService создаёт новый экземпляр.
func NewCustomFieldService(repo FieldDefinitionStore) *CustomFieldService {
	return &CustomFieldService{repo: repo}
}

// CustomFieldInput содержит описание поля анкеты из запроса.
type CustomFieldInput struct {
	Name         string
	Label        string
	Type         string
	Required     bool
	DefaultValue string
	Options      []string
	Description  string
	SortOrder    int
}

func validateFieldInput(input CustomFieldInput) error {
	if err := validation.ValidateFieldDefinition(input.Name, input.Label, input.Type, input.Options); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("описание поля", input.Description, 0, validation.MaxFieldDescLength); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

// Create добавляет описание поля.
func (s *CustomFieldService) Create(ctx context.Context, input CustomFieldInput) (*models.CustomFieldDefinition, error) {
	if err := validateFieldInput(input); err != nil {
		return nil, err
	}

	def := &models.CustomFieldDefinition{
		Name:         input.Name,
		Label:        input.Label,
		Type:         input.Type,
		Required:     input.Required,
		DefaultValue: input.DefaultValue,
		Options:      pq.StringArray(input.Options),
		Description:  input.Description,
		SortOrder:    input.SortOrder,
	}
	if err := s.repo.Create(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// List возвращает все описания полей.
func (s *CustomFieldService) List(ctx context.Context) ([]models.CustomFieldDefinition, error) {
	return s.repo.List(ctx)
}

// Update обновляет описание поля.
func (s *CustomFieldService) Update(ctx context.Context, id uuid.UUID, input CustomFieldInput) (*models.CustomFieldDefinition, error) {
	if err := validateFieldInput(input); err != nil {
		return nil, err
	}

	def, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	def.Name = input.Name
	def.Label = input.Label
	def.Type = input.Type
	def.Required = input.Required
	def.DefaultValue = input.DefaultValue
	def.Options = pq.StringArray(input.Options)
	def.Description = input.Description
	def.SortOrder = input.SortOrder

	if err := s.repo.Update(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// Delete удаляет описание поля.
func (s *CustomFieldService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ValidateValues проверяет значения заявки против текущей схемы.
// Значения с неизвестными именами отклоняются, обязательные поля
// должны присутствовать.
func (s *CustomFieldService) ValidateValues(ctx context.Context, values map[string]interface{}) error {
	defs, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("custom fields: %w", err)
	}

	byName := make(map[string]*models.CustomFieldDefinition, len(defs))
	for i := range defs {
		byName[defs[i].Name] = &defs[i]
	}

	for name := range values {
		if _, ok := byName[name]; !ok {
			return fmt.Errorf("неизвестное поле %q", name)
		}
	}

	for i := range defs {
		def := &defs[i]
		value, present := values[def.Name]
		if !present {
			if def.Required {
				return fmt.Errorf("поле %q обязательно", def.Name)
			}
			continue
		}
		if err := validation.ValidateCustomFieldValue(def, value); err != nil {
			return err
		}
	}

	return nil
}
