package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	apptRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	"github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
	"github.com/evelone226/salon-appointment-service/internal/integrations/userservice"
	"github.com/evelone226/salon-appointment-service/pkg/ptr"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

// Fakes

type fakeAppointmentRepo struct {
	created      *domain.Appointment
	createErr    error
	existing     *domain.Appointment
	overlapping  []*domain.Appointment
	overlapCalls int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	appt.ID = 101
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByRequestID(_ context.Context, requestID string) (*domain.Appointment, error) {
	if f.existing == nil {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.existing, nil
}

func (f *fakeAppointmentRepo) FindOverlapping(_ context.Context, start, end time.Time, staffID *int64) ([]*domain.Appointment, error) {
	f.overlapCalls++
	return f.overlapping, nil
}

type fakeStatusRepo struct {
	statuses map[domain.StatusName]*domain.AppointmentStatus
	err      error
}

func (f *fakeStatusRepo) GetByName(_ context.Context, name domain.StatusName) (*domain.AppointmentStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.statuses[name], nil
}

type fakeCalendarRepo struct {
	holiday        *domain.Holiday
	holidayErr     error
	weekdayWindows []*domain.CalendarWindow
	holidayWindows []*domain.CalendarWindow
}

func (f *fakeCalendarRepo) FindHolidayByDate(_ context.Context, date time.Time) (*domain.Holiday, error) {
	if f.holidayErr != nil {
		return nil, f.holidayErr
	}
	if f.holiday == nil {
		return nil, calendarRepo.ErrHolidayNotFound
	}
	return f.holiday, nil
}

func (f *fakeCalendarRepo) GetByWeekday(_ context.Context, weekday time.Weekday) ([]*domain.CalendarWindow, error) {
	return f.weekdayWindows, nil
}

func (f *fakeCalendarRepo) GetByHoliday(_ context.Context, holidayID int64) ([]*domain.CalendarWindow, error) {
	return f.holidayWindows, nil
}

type fakeCatalogClient struct {
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalogClient) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return svc, nil
}

type fakeUserClient struct {
	clients map[int64]*userservice.User
	staff   map[int64]*userservice.User
}

func (f *fakeUserClient) GetClient(_ context.Context, clientID int64) (*userservice.User, error) {
	user, ok := f.clients[clientID]
	if !ok {
		return nil, userservice.ErrClientNotFound
	}
	return user, nil
}

func (f *fakeUserClient) GetStaff(_ context.Context, staffID int64) (*userservice.User, error) {
	user, ok := f.staff[staffID]
	if !ok {
		return nil, userservice.ErrStaffNotFound
	}
	return user, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// Helpers

// now: четверг, запись на понедельник 09:00
var (
	testNow   = time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)
	testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
)

func mondayWindows() []*domain.CalendarWindow {
	return []*domain.CalendarWindow{
		{
			ID:        7,
			Weekday:   time.Monday,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("20:00"),
		},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, calendar *fakeCalendarRepo) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeStatusRepo{statuses: map[domain.StatusName]*domain.AppointmentStatus{
			domain.StatusPending: {ID: 1, Name: domain.StatusPending},
		}},
		calendar,
		&fakeCatalogClient{services: map[int64]*catalogservice.Service{
			10: {ID: 10, Name: "Haircut", DurationMinutes: 30, IsActive: true},
			20: {ID: 20, Name: "Styling", DurationMinutes: 15, IsActive: true},
			30: {ID: 30, Name: "Quick trim", DurationMinutes: 10, IsActive: true},
		}},
		&fakeUserClient{
			clients: map[int64]*userservice.User{2: {ID: 2, Name: "Client"}},
			staff:   map[int64]*userservice.User{3: {ID: 3, Name: "Staff", IsStaff: true}},
		},
		&fakeTxManager{},
		domain.DefaultPolicy(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:   2,
		StaffID:    ptr.Ptr(int64(3)),
		StartTime:  testStart,
		ServiceIDs: []int64{10, 20},
	}
}

// Tests

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	resp, err := uc.Execute(context.Background(), validRequest(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 45, resp.DurationMinutes) // 30 + 15
	assert.Equal(t, testStart.Add(45*time.Minute), resp.EndTime)
	assert.Equal(t, int64(7), resp.CalendarWindowID)
	assert.Equal(t, 1, repo.overlapCalls)
}

func TestExecute_DurationFloor(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.ServiceIDs = []int64{30} // 10 минут, меньше минимума

	resp, err := uc.Execute(context.Background(), req, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.MinAppointmentMinutes, resp.DurationMinutes)
}

func TestExecute_ExplicitDuration(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.DurationMinutes = ptr.Ptr(90)

	resp, err := uc.Execute(context.Background(), req, 2)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_EmptyServices(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.ServiceIDs = nil

	_, err := uc.Execute(context.Background(), req, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.created)
}

func TestExecute_StartInPast(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.StartTime = testNow.Add(-time.Hour)

	_, err := uc.Execute(context.Background(), req, 2)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.StartTime = testNow.AddDate(0, 7, 0)

	_, err := uc.Execute(context.Background(), req, 2)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_UnknownService(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.ServiceIDs = []int64{999}

	_, err := uc.Execute(context.Background(), req, 2)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := &fakeAppointmentRepo{
		overlapping: []*domain.Appointment{{ID: 55, Status: domain.StatusConfirmed}},
	}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	_, err := uc.Execute(context.Background(), validRequest(), 2)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
}

func TestExecute_NoStaffSkipsConflictCheck(t *testing.T) {
	repo := &fakeAppointmentRepo{
		overlapping: []*domain.Appointment{{ID: 55, Status: domain.StatusConfirmed}},
	}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.StaffID = nil

	resp, err := uc.Execute(context.Background(), req, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.overlapCalls)
	assert.Nil(t, resp.StaffID)
}

func TestExecute_ClosedOnDate(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: nil})

	_, err := uc.Execute(context.Background(), validRequest(), 2)
	assert.ErrorIs(t, err, ErrClosedOnDate)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: []*domain.CalendarWindow{
		{ID: 7, Weekday: time.Monday, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("18:00")},
	}})

	// 09:00 раньше открытия
	_, err := uc.Execute(context.Background(), validRequest(), 2)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_HolidayOverridesWeekday(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	calendar := &fakeCalendarRepo{
		holiday:        &domain.Holiday{ID: 4, Date: testStart, Name: "Spring Day"},
		weekdayWindows: mondayWindows(),
		holidayWindows: nil, // праздник: салон закрыт
	}
	uc := newTestUseCase(repo, calendar)

	_, err := uc.Execute(context.Background(), validRequest(), 2)
	assert.ErrorIs(t, err, ErrClosedOnDate)
}

func TestExecute_IdempotentReplay(t *testing.T) {
	existing := &domain.Appointment{
		ID:               77,
		ClientID:         2,
		StaffID:          ptr.Ptr(int64(3)),
		CalendarWindowID: 7,
		Status:           domain.StatusPending,
		ServiceIDs:       []int64{10, 20},
		StartTime:        testStart,
		DurationMinutes:  45,
		RequestID:        ptr.Ptr("7e0b9fb4-9a5c-4f4a-9e38-0f1a2b3c4d5e"),
	}
	repo := &fakeAppointmentRepo{
		createErr: apptRepo.ErrDuplicateRequest,
		existing:  existing,
	}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.RequestID = ptr.Ptr("7e0b9fb4-9a5c-4f4a-9e38-0f1a2b3c4d5e")

	resp, err := uc.Execute(context.Background(), req, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
}

func TestExecute_InvalidRequestID(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.RequestID = ptr.Ptr("not-a-uuid")

	_, err := uc.Execute(context.Background(), req, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownClient(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: mondayWindows()})

	req := validRequest()
	req.ClientID = 999

	_, err := uc.Execute(context.Background(), req, 2)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
