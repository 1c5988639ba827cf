package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	"github.com/evelone226/salon-appointment-service/internal/service/appointments/models"
	"github.com/evelone226/salon-appointment-service/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appt      *domain.Appointment
	list      []*domain.Appointment
	updateErr error

	listedStatus *domain.StatusName
	updatedFrom  int64
	updatedTo    int64
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func (f *fakeAppointmentRepo) ListByClient(_ context.Context, clientID int64, status *domain.StatusName) ([]*domain.Appointment, error) {
	f.listedStatus = status
	return f.list, nil
}

func (f *fakeAppointmentRepo) ListByStaff(_ context.Context, staffID int64, status *domain.StatusName) ([]*domain.Appointment, error) {
	f.listedStatus = status
	return f.list, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id, fromStatusID, toStatusID int64) error {
	if f.updateErr != nil {
		// Имитация проигранной гонки: запись уже перевели
		f.appt.Status = domain.StatusCancelled
		f.appt.StatusID = 3
		return f.updateErr
	}
	f.updatedFrom = fromStatusID
	f.updatedTo = toStatusID
	f.appt.StatusID = toStatusID
	switch toStatusID {
	case 4:
		f.appt.Status = domain.StatusCompleted
	case 5:
		f.appt.Status = domain.StatusNoShow
	}
	return nil
}

type fakeStatusRepo struct{}

func (fakeStatusRepo) GetByName(_ context.Context, name domain.StatusName) (*domain.AppointmentStatus, error) {
	ids := map[domain.StatusName]int64{
		domain.StatusPending:   1,
		domain.StatusConfirmed: 2,
		domain.StatusCancelled: 3,
		domain.StatusCompleted: 4,
		domain.StatusNoShow:    5,
	}
	return &domain.AppointmentStatus{ID: ids[name], Name: name}, nil
}

type fakeUserClient struct {
	granted map[int64]bool
}

func (f *fakeUserClient) HasCapability(_ context.Context, userID int64, capability string) (bool, error) {
	return f.granted[userID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// admin = 1, client = 2, staff = 3
func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		CreatorID:       2,
		ClientID:        2,
		StaffID:         ptr.Ptr(int64(3)),
		StatusID:        2,
		Status:          domain.StatusConfirmed,
		ServiceIDs:      []int64{10},
		StartTime:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	}
}

func newTestService(repo *fakeAppointmentRepo) *Service {
	return NewService(repo, fakeStatusRepo{}, &fakeUserClient{granted: map[int64]bool{1: true}}, nopLogger{})
}

func TestGetByID_Participant(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{appt: confirmedAppointment()})

	for _, requester := range []int64{2, 3} {
		resp, err := svc.GetByID(context.Background(), 42, requester)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	}
}

func TestGetByID_ManagerAllowed(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{appt: confirmedAppointment()})

	_, err := svc.GetByID(context.Background(), 42, 1)
	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{appt: confirmedAppointment()})

	_, err := svc.GetByID(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{})

	_, err := svc.GetByID(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListByClient_SelfWithStatusFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{confirmedAppointment()}}
	svc := newTestService(repo)

	resp, err := svc.ListByClient(context.Background(), &models.ListByClientRequest{
		ClientID:    2,
		RequesterID: 2,
		Status:      ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.listedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.listedStatus)
}

func TestListByClient_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{})

	_, err := svc.ListByClient(context.Background(), &models.ListByClientRequest{
		ClientID:    2,
		RequesterID: 2,
		Status:      ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByClient_StrangerDenied(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{})

	_, err := svc.ListByClient(context.Background(), &models.ListByClientRequest{
		ClientID:    2,
		RequesterID: 99,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByStaff_ManagerSeesOthers(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{confirmedAppointment()}}
	svc := newTestService(repo)

	resp, err := svc.ListByStaff(context.Background(), &models.ListByStaffRequest{
		StaffID:     3,
		RequesterID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Nil(t, repo.listedStatus)
}

func TestComplete_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: confirmedAppointment()}
	svc := newTestService(repo)

	resp, err := svc.Complete(context.Background(), &models.TransitionRequest{
		AppointmentID: 42,
		RequesterID:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, int64(2), repo.updatedFrom)
	assert.Equal(t, int64(4), repo.updatedTo)
}

func TestMarkNoShow_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: confirmedAppointment()}
	svc := newTestService(repo)

	resp, err := svc.MarkNoShow(context.Background(), &models.TransitionRequest{
		AppointmentID: 42,
		RequesterID:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	assert.Equal(t, int64(5), repo.updatedTo)
}

func TestComplete_PendingRejected(t *testing.T) {
	appt := confirmedAppointment()
	appt.Status = domain.StatusPending
	appt.StatusID = 1
	svc := newTestService(&fakeAppointmentRepo{appt: appt})

	// PENDING завершить нельзя: сначала подтверждение
	_, err := svc.Complete(context.Background(), &models.TransitionRequest{
		AppointmentID: 42,
		RequesterID:   1,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_AccessDenied(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{appt: confirmedAppointment()})

	_, err := svc.Complete(context.Background(), &models.TransitionRequest{
		AppointmentID: 42,
		RequesterID:   3,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestComplete_LostStatusRace(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: confirmedAppointment(), updateErr: apptRepo.ErrStaleStatus}
	svc := newTestService(repo)

	_, err := svc.Complete(context.Background(), &models.TransitionRequest{
		AppointmentID: 42,
		RequesterID:   1,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
