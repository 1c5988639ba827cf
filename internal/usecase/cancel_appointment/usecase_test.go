package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	"github.com/evelone226/salon-appointment-service/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appt      *domain.Appointment
	cancelErr error

	cancelledFrom int64
	cancelledTo   int64
	cancelledBy   int64
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id, fromStatusID, toStatusID int64, reason *string, cancelledBy int64) error {
	if f.cancelErr != nil {
		// Имитация проигранной гонки: конкурентный переход завершил запись
		f.appt.Status = domain.StatusCompleted
		f.appt.StatusID = 4
		return f.cancelErr
	}
	f.cancelledFrom = fromStatusID
	f.cancelledTo = toStatusID
	f.cancelledBy = cancelledBy

	now := time.Now()
	f.appt.StatusID = toStatusID
	f.appt.Status = domain.StatusCancelled
	f.appt.CancellationReason = reason
	f.appt.CancelledBy = &cancelledBy
	f.appt.CancelledAt = &now
	return nil
}

type fakeStatusRepo struct{}

func (fakeStatusRepo) GetByName(_ context.Context, name domain.StatusName) (*domain.AppointmentStatus, error) {
	return &domain.AppointmentStatus{ID: 3, Name: name}, nil
}

type fakeUserClient struct {
	granted map[int64]bool
}

func (f *fakeUserClient) HasCapability(_ context.Context, userID int64, capability string) (bool, error) {
	return f.granted[userID], nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// confirmedAppointment запись клиента 2 с мастером 3, создана пользователем 2
func confirmedAppointment(start time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		CreatorID:       2,
		ClientID:        2,
		StaffID:         ptr.Ptr(int64(3)),
		StatusID:        2,
		Status:          domain.StatusConfirmed,
		ServiceIDs:      []int64{10},
		StartTime:       start,
		DurationMinutes: 45,
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, users *fakeUserClient) *UseCase {
	uc := NewUseCase(repo, fakeStatusRepo{}, users, domain.DefaultPolicy(), nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_ClientCancelsInTime(t *testing.T) {
	// За 3 часа до начала при уведомительном сроке 2 часа
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(3 * time.Hour))}
	uc := newTestUseCase(repo, &fakeUserClient{})

	reason := "не смогу прийти"
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		RequesterID:   2,
		Reason:        &reason,
		NotifyClient:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(2), repo.cancelledFrom)
	assert.Equal(t, int64(3), repo.cancelledTo)
	assert.Equal(t, int64(2), repo.cancelledBy)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, reason, *resp.CancellationReason)
	// Отменял сам клиент - уведомление не нужно
	assert.False(t, resp.NotifyClient)
}

func TestExecute_StaffCancelNotifiesClient(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(3 * time.Hour))}
	uc := newTestUseCase(repo, &fakeUserClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		RequesterID:   3,
		NotifyClient:  true,
	})
	require.NoError(t, err)
	assert.True(t, resp.NotifyClient)
}

func TestExecute_WindowElapsed(t *testing.T) {
	// За 90 минут до начала при уведомительном сроке 2 часа
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(90 * time.Minute))}
	uc := newTestUseCase(repo, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 2})
	assert.ErrorIs(t, err, ErrCancellationWindowElapsed)
}

func TestExecute_AppointmentStarted(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(-10 * time.Minute))}
	uc := newTestUseCase(repo, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 2})
	assert.ErrorIs(t, err, ErrAppointmentInPast)
}

func TestExecute_StrangerDenied(t *testing.T) {
	// Посторонний без привилегии: отказ в доступе даже при валидном времени
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(3 * time.Hour))}
	uc := newTestUseCase(repo, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_StrangerDeniedBeforeTimeChecks(t *testing.T) {
	// Для постороннего проверка прав идет раньше временных ограничений
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(30 * time.Minute))}
	uc := newTestUseCase(repo, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_CapabilityHolderAllowed(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(testNow.Add(3 * time.Hour))}
	uc := newTestUseCase(repo, &fakeUserClient{granted: map[int64]bool{99: true}})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		RequesterID:   99,
		NotifyClient:  true,
	})
	require.NoError(t, err)
	assert.True(t, resp.NotifyClient)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	appt := confirmedAppointment(testNow.Add(3 * time.Hour))
	appt.Status = domain.StatusCancelled
	appt.StatusID = 3
	uc := newTestUseCase(&fakeAppointmentRepo{appt: appt}, &fakeUserClient{})

	// Статус проверяется до прав: даже посторонний получает already cancelled
	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 99})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_AlreadyFinished(t *testing.T) {
	appt := confirmedAppointment(testNow.Add(3 * time.Hour))
	appt.Status = domain.StatusCompleted
	appt.StatusID = 4
	uc := newTestUseCase(&fakeAppointmentRepo{appt: appt}, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 2})
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 2})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_LostStatusRace(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appt:      confirmedAppointment(testNow.Add(3 * time.Hour)),
		cancelErr: apptRepo.ErrStaleStatus,
	}
	uc := newTestUseCase(repo, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 42, RequesterID: 2})
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}
