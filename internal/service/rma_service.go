package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
	"github.com/akinfotech/rma-backend/internal/validation"
)

// RMAStore описывает хранилище заявок.
// Методы переходов возвращают false, если заявка не в ожидаемом статусе.
type RMAStore interface {
	Create(ctx context.Context, rma *models.RMA) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RMA, error)
	ListByStatus(ctx context.Context, status models.RMAStatus, limit, offset int) ([]models.RMA, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.RMA, error)
	CountByStatus(ctx context.Context) (map[models.RMAStatus]int, error)
	MarkInServiceCentre(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateRemark(ctx context.Context, id uuid.UUID, remark string) (bool, error)
	MarkReady(ctx context.Context, id uuid.UUID, remark, otp string) (bool, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactStore описывает доступ к справочнику контактов.
type ContactStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
}

// FieldValidator проверяет значения настраиваемых полей против описаний.
type FieldValidator interface {
	ValidateValues(ctx context.Context, values map[string]interface{}) error
}

// Mailer отправляет письма клиенту. Реализация - Brevo клиент.
type Mailer interface {
	SendConfirmation(ctx context.Context, rma *models.RMA) error
	SendReady(ctx context.Context, rma *models.RMA, otp string) error
	SendDelivered(ctx context.Context, rma *models.RMA) error
}

// SettingsProvider отдаёт флаг обязательности OTP на момент вызова.
type SettingsProvider interface {
	RequireOTP(ctx context.Context) (bool, error)
}

// EventHub рассылает события дашборду.
type EventHub interface {
	Broadcast(event string, data interface{})
}

// События жизненного цикла для WebSocket подписчиков.
const (
	EventRMACreated       = "rma.created"
	EventRMAStatusChanged = "rma.status_changed"
	EventRMAUpdated       = "rma.updated"
	EventRMADeleted       = "rma.deleted"
)

// CreateRMAInput содержит данные анкеты приёма.
type CreateRMAInput struct {
	ContactID        uuid.UUID
	Brand            string
	ModelNumber      string
	SerialNumber     string
	ProblemsReported string
	Comments         string
	CustomFields     map[string]interface{}
}

// RMAService реализует жизненный цикл возврата:
// processing -> in_service_centre -> ready -> delivered, только вперёд.
// Порядок побочных эффектов фиксированный: сначала запись, потом письмо.
// Ошибка письма поднимается наверх, но запись не откатывается.
type RMAService struct {
	repo     RMAStore
	contacts ContactStore
	fields   FieldValidator
	mailer   Mailer
	settings SettingsProvider
	cache    *CacheService
	hub      EventHub
}

// NewRMAService создаёт новый экземпляр.
func NewRMAService(repo RMAStore, contacts ContactStore, fields FieldValidator, mailer Mailer, settings SettingsProvider, cache *CacheService) *RMAService {
	return &RMAService{
		repo:     repo,
		contacts: contacts,
		fields:   fields,
		mailer:   mailer,
		settings: settings,
		cache:    cache,
	}
}

// SetHub подключает рассылку событий дашборду.
func (s *RMAService) SetHub(hub EventHub) {
	s.hub = hub
}

// Create регистрирует новую заявку и отправляет письмо-подтверждение.
func (s *RMAService) Create(ctx context.Context, input CreateRMAInput) (*models.RMA, error) {
	if err := validation.ValidateProductFields(input.Brand, input.ModelNumber, input.SerialNumber); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateProblemsReported(input.ProblemsReported); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateComments(input.Comments); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	contact, err := s.contacts.GetByID(ctx, input.ContactID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный контакт")
		}
		return nil, err
	}

	if s.fields != nil {
		if err := s.fields.ValidateValues(ctx, input.CustomFields); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	customFields, err := marshalCustomFields(input.CustomFields)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "некорректные дополнительные поля")
	}

	rma := &models.RMA{
		ContactID:        contact.ID,
		ContactName:      contact.Name,
		ContactEmail:     contact.Email,
		ContactPhone:     contact.Phone,
		ContactCompany:   contact.Company,
		Brand:            input.Brand,
		ModelNumber:      input.ModelNumber,
		SerialNumber:     input.SerialNumber,
		ProblemsReported: input.ProblemsReported,
		Comments:         input.Comments,
		CustomFields:     customFields,
		Status:           models.StatusProcessing,
	}

	if err := s.repo.Create(ctx, rma); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDependency, "не удалось сохранить заявку")
	}

	s.invalidateStats()
	s.publish(EventRMACreated, rma)

	if err := s.mailer.SendConfirmation(ctx, rma); err != nil {
		return rma, apperror.Wrap(err, apperror.ErrCodeDependency, "заявка сохранена, но письмо-подтверждение не отправлено")
	}

	return rma, nil
}

// SendToServiceCentre переводит заявку processing -> in_service_centre.
// Письмо на этом переходе не отправляется.
func (s *RMAService) SendToServiceCentre(ctx context.Context, id uuid.UUID) (*models.RMA, error) {
	ok, err := s.repo.MarkInServiceCentre(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDependency, "не удалось обновить заявку")
	}
	if !ok {
		return nil, s.resolveTransitionFailure(ctx, id, models.StatusProcessing)
	}

	rma, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	s.publish(EventRMAStatusChanged, rma)
	return rma, nil
}

// SaveRemark сохраняет заметку сервисного центра, не меняя статус.
// Повторный вызов с той же заметкой безопасен.
func (s *RMAService) SaveRemark(ctx context.Context, id uuid.UUID, remark string) (*models.RMA, error) {
	if err := validation.ValidateRemark(remark); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	ok, err := s.repo.UpdateRemark(ctx, id, remark)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDependency, "не удалось сохранить заметку")
	}
	if !ok {
		return nil, s.resolveTransitionFailure(ctx, id, models.StatusInServiceCentre)
	}

	rma, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(EventRMAUpdated, rma)
	return rma, nil
}

// MarkReady переводит заявку in_service_centre -> ready, выпускает свежий
// код выдачи и отправляет клиенту письмо с этим кодом.
func (s *RMAService) MarkReady(ctx context.Context, id uuid.UUID, remark string) (*models.RMA, error) {
	if err := validation.ValidateRemark(remark); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сгенерировать код выдачи")
	}

	ok, err := s.repo.MarkReady(ctx, id, remark, otp)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDependency, "не удалось обновить заявку")
	}
	if !ok {
		return nil, s.resolveTransitionFailure(ctx, id, models.StatusInServiceCentre)
	}

	rma, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	s.publish(EventRMAStatusChanged, rma)

	if err := s.mailer.SendReady(ctx, rma, otp); err != nil {
		return rma, apperror.Wrap(err, apperror.ErrCodeDependency, "заявка готова, но письмо с кодом не отправлено")
	}

	return rma, nil
}

// ConfirmDelivery переводит заявку ready -> delivered.
// Обязательность кода выдачи читается из настроек на момент вызова,
// сравнение кода строгое посимвольное.
func (s *RMAService) ConfirmDelivery(ctx context.Context, id uuid.UUID, suppliedOTP string) (*models.RMA, error) {
	rma, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rma.Status != models.StatusReady {
		return nil, s.invalidTransition(rma.Status, models.StatusReady)
	}

	required, err := s.settings.RequireOTP(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDependency, "не удалось прочитать настройки")
	}
	if required && suppliedOTP != rma.OTP {
		return nil, apperror.New(apperror.ErrCodeInvalidOTP, "неверный код выдачи")
	}

	ok, err := s.repo.MarkDelivered(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDependency, "не удалось обновить заявку")
	}
	if !ok {
		// Конкурирующая выдача успела раньше.
		return nil, s.resolveTransitionFailure(ctx, id, models.StatusReady)
	}

	rma, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	s.publish(EventRMAStatusChanged, rma)

	if err := s.mailer.SendDelivered(ctx, rma); err != nil {
		return rma, apperror.Wrap(err, apperror.ErrCodeDependency, "выдача подтверждена, но письмо не отправлено")
	}

	return rma, nil
}

// Get возвращает заявку по идентификатору.
func (s *RMAService) Get(ctx context.Context, id uuid.UUID) (*models.RMA, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByStatus возвращает заявки в заданном статусе.
func (s *RMAService) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.RMA, error) {
	parsed, err := models.NewRMAStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, parsed, limit, offset)
}

// Search ищет заявки по свободной строке.
func (s *RMAService) Search(ctx context.Context, query string, limit, offset int) ([]models.RMA, error) {
	if err := validation.ValidateNonEmpty("строка поиска", query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return s.repo.Search(ctx, query, limit, offset)
}

// Delete удаляет заявку (административная операция).
func (s *RMAService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats()
	s.publish(EventRMADeleted, map[string]string{"id": id.String()})
	return nil
}

// resolveTransitionFailure различает "нет такой заявки" и "заявка не в том
// статусе" после неуспешного условного UPDATE.
func (s *RMAService) resolveTransitionFailure(ctx context.Context, id uuid.UUID, want models.RMAStatus) error {
	rma, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.invalidTransition(rma.Status, want)
}

func (s *RMAService) invalidTransition(got, want models.RMAStatus) error {
	return apperror.New(apperror.ErrCodeInvalidTransition,
		fmt.Sprintf("заявка в статусе %s, ожидался %s", got, want))
}

func (s *RMAService) invalidateStats() {
	if s.cache != nil {
		s.cache.InvalidateStats()
	}
}

func (s *RMAService) publish(event string, data interface{}) {
	if s.hub != nil {
		s.hub.Broadcast(event, data)
	}
}

func marshalCustomFields(values map[string]interface{}) (types.JSONText, error) {
	if len(values) == 0 {
		return types.JSONText(`{}`), nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}
