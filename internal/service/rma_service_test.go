package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akinfotech/rma-backend/internal/models"
	"github.com/akinfotech/rma-backend/internal/pkg/apperror"
)

type mockRMARepo struct {
	mock.Mock
}

func (m *mockRMARepo) Create(ctx context.Context, rma *models.RMA) error {
	args := m.Called(ctx, rma)
	if args.Error(0) == nil {
		rma.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockRMARepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RMA, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RMA), args.Error(1)
}

func (m *mockRMARepo) ListByStatus(ctx context.Context, status models.RMAStatus, limit, offset int) ([]models.RMA, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.RMA), args.Error(1)
}

func (m *mockRMARepo) Search(ctx context.Context, query string, limit, offset int) ([]models.RMA, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]models.RMA), args.Error(1)
}

func (m *mockRMARepo) CountByStatus(ctx context.Context) (map[models.RMAStatus]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[models.RMAStatus]int), args.Error(1)
}

func (m *mockRMARepo) MarkInServiceCentre(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRMARepo) UpdateRemark(ctx context.Context, id uuid.UUID, remark string) (bool, error) {
	args := m.Called(ctx, id, remark)
	return args.Bool(0), args.Error(1)
}

func (m *mockRMARepo) MarkReady(ctx context.Context, id uuid.UUID, remark, otp string) (bool, error) {
	args := m.Called(ctx, id, remark, otp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRMARepo) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRMARepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockContactStore struct {
	mock.Mock
}

func (m *mockContactStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

type mockFieldValidator struct {
	mock.Mock
}

func (m *mockFieldValidator) ValidateValues(ctx context.Context, values map[string]interface{}) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendConfirmation(ctx context.Context, rma *models.RMA) error {
	args := m.Called(ctx, rma)
	return args.Error(0)
}

func (m *mockMailer) SendReady(ctx context.Context, rma *models.RMA, otp string) error {
	args := m.Called(ctx, rma, otp)
	return args.Error(0)
}

func (m *mockMailer) SendDelivered(ctx context.Context, rma *models.RMA) error {
	args := m.Called(ctx, rma)
	return args.Error(0)
}

type mockSettingsProvider struct {
	mock.Mock
}

func (m *mockSettingsProvider) RequireOTP(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type mockEventHub struct {
	mock.Mock
}

func (m *mockEventHub) Broadcast(event string, data interface{}) {
	m.Called(event, data)
}

func newTestRMAService() (*RMAService, *mockRMARepo, *mockContactStore, *mockFieldValidator, *mockMailer, *mockSettingsProvider) {
	repo := new(mockRMARepo)
	contacts := new(mockContactStore)
	fields := new(mockFieldValidator)
	mailer := new(mockMailer)
	settings := new(mockSettingsProvider)
	svc := NewRMAService(repo, contacts, fields, mailer, settings, nil)
	return svc, repo, contacts, fields, mailer, settings
}

func validCreateInput(contactID uuid.UUID) CreateRMAInput {
	return CreateRMAInput{
		ContactID:        contactID,
		Brand:            "Lenovo",
		ModelNumber:      "ThinkPad T14",
		SerialNumber:     "SN-4412-0093",
		ProblemsReported: "Не включается после обновления",
		Comments:         "Принесли с зарядным устройством",
		CustomFields:     map[string]interface{}{"warranty": true},
	}
}

func TestRMAService_Create_Success(t *testing.T) {
	svc, repo, contacts, fields, mailer, _ := newTestRMAService()
	ctx := context.Background()

	contactID := uuid.New()
	contact := &models.Contact{
		ID:    contactID,
		Name:  "Анна Смирнова",
		Email: "anna@example.com",
		Phone: "+7 900 123-45-67",
	}

	contacts.On("GetByID", ctx, contactID).Return(contact, nil)
	fields.On("ValidateValues", ctx, mock.Anything).Return(nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.RMA")).Return(nil)
	mailer.On("SendConfirmation", ctx, mock.AnythingOfType("*models.RMA")).Return(nil)

	rma, err := svc.Create(ctx, validCreateInput(contactID))

	assert.NoError(t, err)
	assert.NotNil(t, rma)
	assert.Equal(t, models.StatusProcessing, rma.Status)
	assert.Equal(t, contact.Name, rma.ContactName)
	assert.Equal(t, contact.Email, rma.ContactEmail)
	mailer.AssertCalled(t, "SendConfirmation", ctx, rma)
}

func TestRMAService_Create_UnknownContact(t *testing.T) {
	svc, repo, contacts, _, mailer, _ := newTestRMAService()
	ctx := context.Background()

	contactID := uuid.New()
	contacts.On("GetByID", ctx, contactID).Return(nil, apperror.ErrContactNotFound)

	rma, err := svc.Create(ctx, validCreateInput(contactID))

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
}

func TestRMAService_Create_InvalidFields(t *testing.T) {
	svc, repo, _, _, _, _ := newTestRMAService()
	ctx := context.Background()

	input := validCreateInput(uuid.New())
	input.Brand = ""

	rma, err := svc.Create(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRMAService_Create_MailFailureStillPersists(t *testing.T) {
	svc, repo, contacts, fields, mailer, _ := newTestRMAService()
	ctx := context.Background()

	contactID := uuid.New()
	contact := &models.Contact{ID: contactID, Name: "Анна Смирнова", Email: "anna@example.com"}

	contacts.On("GetByID", ctx, contactID).Return(contact, nil)
	fields.On("ValidateValues", ctx, mock.Anything).Return(nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.RMA")).Return(nil)
	mailer.On("SendConfirmation", ctx, mock.AnythingOfType("*models.RMA")).Return(errors.New("brevo: 503"))

	rma, err := svc.Create(ctx, validCreateInput(contactID))

	// Заявка сохранена, ошибка письма не откатывает запись.
	assert.Error(t, err)
	assert.NotNil(t, rma)
	assert.True(t, apperror.IsDependency(err))
	assert.NotEqual(t, uuid.Nil, rma.ID)
}

func TestRMAService_SendToServiceCentre_Success(t *testing.T) {
	svc, repo, _, _, mailer, _ := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	updated := &models.RMA{ID: id, Status: models.StatusInServiceCentre}

	repo.On("MarkInServiceCentre", ctx, id).Return(true, nil)
	repo.On("GetByID", ctx, id).Return(updated, nil)

	rma, err := svc.SendToServiceCentre(ctx, id)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusInServiceCentre, rma.Status)
	// На этом переходе письмо клиенту не уходит.
	mailer.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendReady", mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendDelivered", mock.Anything, mock.Anything)
}

func TestRMAService_SendToServiceCentre_WrongStatus(t *testing.T) {
	svc, repo, _, _, _, _ := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	repo.On("MarkInServiceCentre", ctx, id).Return(false, nil)
	repo.On("GetByID", ctx, id).Return(&models.RMA{ID: id, Status: models.StatusReady}, nil)

	rma, err := svc.SendToServiceCentre(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsInvalidTransition(err))
}

func TestRMAService_SendToServiceCentre_NotFound(t *testing.T) {
	svc, repo, _, _, _, _ := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	repo.On("MarkInServiceCentre", ctx, id).Return(false, nil)
	repo.On("GetByID", ctx, id).Return(nil, apperror.ErrRMANotFound)

	rma, err := svc.SendToServiceCentre(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRMAService_SaveRemark_Success(t *testing.T) {
	svc, repo, _, _, _, _ := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	remark := "Заменена материнская плата"
	updated := &models.RMA{ID: id, Status: models.StatusInServiceCentre, Remark: remark}

	repo.On("UpdateRemark", ctx, id, remark).Return(true, nil)
	repo.On("GetByID", ctx, id).Return(updated, nil)

	rma, err := svc.SaveRemark(ctx, id, remark)

	assert.NoError(t, err)
	assert.Equal(t, remark, rma.Remark)
	assert.Equal(t, models.StatusInServiceCentre, rma.Status)
}

func TestRMAService_MarkReady_GeneratesOTPAndSendsIt(t *testing.T) {
	svc, repo, _, _, mailer, _ := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	remark := "Готово к выдаче"

	var storedOTP string
	repo.On("MarkReady", ctx, id, remark, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedOTP = args.String(3)
		}).
		Return(true, nil)

	updated := &models.RMA{ID: id, Status: models.StatusReady, IsReady: true}
	repo.On("GetByID", ctx, id).Return(updated, nil)

	var mailedOTP string
	mailer.On("SendReady", ctx, updated, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			mailedOTP = args.String(2)
		}).
		Return(nil)

	rma, err := svc.MarkReady(ctx, id, remark)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusReady, rma.Status)
	// Код шестизначный, без ведущего нуля, и клиенту уходит тот же код,
	// который попал в хранилище.
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), storedOTP)
	assert.Equal(t, storedOTP, mailedOTP)
}

func TestRMAService_MarkReady_WrongStatus(t *testing.T) {
	svc, repo, _, _, mailer, _ := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	repo.On("MarkReady", ctx, id, "", mock.AnythingOfType("string")).Return(false, nil)
	repo.On("GetByID", ctx, id).Return(&models.RMA{ID: id, Status: models.StatusProcessing}, nil)

	rma, err := svc.MarkReady(ctx, id, "")

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsInvalidTransition(err))
	mailer.AssertNotCalled(t, "SendReady", mock.Anything, mock.Anything, mock.Anything)
}

func TestRMAService_ConfirmDelivery_Success(t *testing.T) {
	svc, repo, _, _, mailer, settings := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	ready := &models.RMA{ID: id, Status: models.StatusReady, OTP: "423817"}
	delivered := &models.RMA{ID: id, Status: models.StatusDelivered, IsDelivered: true}

	repo.On("GetByID", ctx, id).Return(ready, nil).Once()
	settings.On("RequireOTP", ctx).Return(true, nil)
	repo.On("MarkDelivered", ctx, id).Return(true, nil)
	repo.On("GetByID", ctx, id).Return(delivered, nil).Once()
	mailer.On("SendDelivered", ctx, delivered).Return(nil)

	rma, err := svc.ConfirmDelivery(ctx, id, "423817")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, rma.Status)
	assert.True(t, rma.IsDelivered)
	mailer.AssertCalled(t, "SendDelivered", ctx, delivered)
}

func TestRMAService_ConfirmDelivery_WrongOTP(t *testing.T) {
	svc, repo, _, _, mailer, settings := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	ready := &models.RMA{ID: id, Status: models.StatusReady, OTP: "423817"}

	repo.On("GetByID", ctx, id).Return(ready, nil)
	settings.On("RequireOTP", ctx).Return(true, nil)

	rma, err := svc.ConfirmDelivery(ctx, id, "423818")

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsInvalidOTP(err))
	repo.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendDelivered", mock.Anything, mock.Anything)
}

func TestRMAService_ConfirmDelivery_OTPNotRequired(t *testing.T) {
	svc, repo, _, _, mailer, settings := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	ready := &models.RMA{ID: id, Status: models.StatusReady, OTP: "423817"}
	delivered := &models.RMA{ID: id, Status: models.StatusDelivered, IsDelivered: true}

	repo.On("GetByID", ctx, id).Return(ready, nil).Once()
	settings.On("RequireOTP", ctx).Return(false, nil)
	repo.On("MarkDelivered", ctx, id).Return(true, nil)
	repo.On("GetByID", ctx, id).Return(delivered, nil).Once()
	mailer.On("SendDelivered", ctx, delivered).Return(nil)

	// Проверка выключена в настройках, пустой код допустим.
	rma, err := svc.ConfirmDelivery(ctx, id, "")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, rma.Status)
}

func TestRMAService_ConfirmDelivery_WrongStatus(t *testing.T) {
	svc, repo, _, _, _, settings := newTestRMAService()
	ctx := context.Background()

	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(&models.RMA{ID: id, Status: models.StatusProcessing}, nil)

	rma, err := svc.ConfirmDelivery(ctx, id, "423817")

	assert.Error(t, err)
	assert.Nil(t, rma)
	assert.True(t, apperror.IsInvalidTransition(err))
	settings.AssertNotCalled(t, "RequireOTP", mock.Anything)
}

func TestRMAService_Create_PublishesEvent(t *testing.T) {
	svc, repo, contacts, fields, mailer, _ := newTestRMAService()
	ctx := context.Background()

	hub := new(mockEventHub)
	svc.SetHub(hub)

	contactID := uuid.New()
	contact := &models.Contact{ID: contactID, Name: "Анна Смирнова", Email: "anna@example.com"}

	contacts.On("GetByID", ctx, contactID).Return(contact, nil)
	fields.On("ValidateValues", ctx, mock.Anything).Return(nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.RMA")).Return(nil)
	mailer.On("SendConfirmation", ctx, mock.AnythingOfType("*models.RMA")).Return(nil)
	hub.On("Broadcast", EventRMACreated, mock.Anything).Return()

	_, err := svc.Create(ctx, validCreateInput(contactID))

	assert.NoError(t, err)
	hub.AssertCalled(t, "Broadcast", EventRMACreated, mock.Anything)
}

func TestRMAService_ListByStatus_InvalidStatus(t *testing.T) {
	svc, repo, _, _, _, _ := newTestRMAService()
	ctx := context.Background()

	rmas, err := svc.ListByStatus(ctx, "shipped", 20, 0)

	assert.Error(t, err)
	assert.Nil(t, rmas)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
