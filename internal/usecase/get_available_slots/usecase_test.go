package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	"github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
	"github.com/evelone226/salon-appointment-service/pkg/ptr"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListForDate(_ context.Context, date time.Time, staffID *int64) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeCalendarRepo struct {
	holiday        *domain.Holiday
	weekdayWindows []*domain.CalendarWindow
	holidayWindows []*domain.CalendarWindow
}

func (f *fakeCalendarRepo) FindHolidayByDate(_ context.Context, date time.Time) (*domain.Holiday, error) {
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

// now: четверг, слоты на понедельник
var (
	testNow  = time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func morningWindow() []*domain.CalendarWindow {
	return []*domain.CalendarWindow{
		{
			ID:        7,
			Weekday:   time.Monday,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("12:00"),
		},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, calendar *fakeCalendarRepo) *UseCase {
	uc := NewUseCase(
		repo,
		calendar,
		&fakeCatalogClient{services: map[int64]*catalogservice.Service{
			10: {ID: 10, Name: "Haircut", DurationMinutes: 30, IsActive: true},
			20: {ID: 20, Name: "Styling", DurationMinutes: 15, IsActive: true},
		}},
		domain.DefaultPolicy(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func slotStarts(slots []Slot) []string {
	starts := make([]string, len(slots))
	for i, slot := range slots {
		starts[i] = slot.StartTime.String()
	}
	return starts
}

func TestExecute_GeneratesCandidatesWithinWindow(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	// 45 минут в окне [09:00, 12:00), шаг 15: последний старт 11:15
	resp, err := uc.Execute(context.Background(), &Request{
		Date:       testDate,
		ServiceIDs: []int64{10, 20},
	})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.DurationMinutes)
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "11:15", resp.Slots[9].StartTime.String())
}

func TestExecute_ExcludesStaffConflicts(t *testing.T) {
	// Запись мастера [10:00, 10:45) выбивает кандидатов 09:30..10:30
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{
			ID:              5,
			StaffID:         ptr.Ptr(int64(3)),
			Status:          domain.StatusConfirmed,
			StartTime:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			DurationMinutes: 45,
		},
	}}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		StaffID:         ptr.Ptr(int64(3)),
		DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:15", "10:45", "11:00", "11:15"}, slotStarts(resp.Slots))
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{
			ID:              5,
			StaffID:         ptr.Ptr(int64(3)),
			Status:          domain.StatusCancelled,
			StartTime:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			DurationMinutes: 45,
		},
	}}
	uc := newTestUseCase(repo, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		StaffID:         ptr.Ptr(int64(3)),
		DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 10)
}

func TestExecute_NoStaffIgnoresAppointments(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 10)
	assert.Nil(t, resp.StaffID)
}

func TestExecute_ClosedDateReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_HolidayOverridesWeekday(t *testing.T) {
	calendar := &fakeCalendarRepo{
		holiday:        &domain.Holiday{ID: 4, Date: testDate, Name: "Spring Day"},
		weekdayWindows: morningWindow(),
		holidayWindows: []*domain.CalendarWindow{
			{
				ID:        8,
				Weekday:   time.Monday,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("11:00"),
				HolidayID: ptr.Ptr(int64(4)),
			},
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, calendar)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		DurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:15", "10:30"}, slotStarts(resp.Slots))
}

func TestExecute_TodayFiltersPastCandidates(t *testing.T) {
	// Сейчас 12:00, окно [09:00, 18:00): утренние кандидаты отфильтрованы
	window := []*domain.CalendarWindow{
		{
			ID:        7,
			Weekday:   testNow.Weekday(),
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("18:00"),
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: window})

	today := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            today,
		DurationMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "12:15", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:00", resp.Slots[len(resp.Slots)-1].StartTime.String())
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	_, err := uc.Execute(context.Background(), &Request{
		Date:            testNow.AddDate(0, 0, -1),
		DurationMinutes: ptr.Ptr(45),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_MissingDurationAndServices(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceIDs: []int64{999}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ShortServicesFloorDuration(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{weekdayWindows: morningWindow()})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, ServiceIDs: []int64{20}})
	require.NoError(t, err)
	assert.Equal(t, domain.MinAppointmentMinutes, resp.DurationMinutes)
}
