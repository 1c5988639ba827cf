package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	"github.com/evelone226/salon-appointment-service/internal/service/calendar/models"
	"github.com/evelone226/salon-appointment-service/pkg/ptr"
	"github.com/evelone226/salon-appointment-service/pkg/types"
)

type fakeCalendarRepo struct {
	windows        []*domain.CalendarWindow
	holidayWindows []*domain.CalendarWindow
	deleteErr      error

	created *domain.CalendarWindow
	deleted int64
}

func (f *fakeCalendarRepo) GetAllWindows(_ context.Context) ([]*domain.CalendarWindow, error) {
	return f.windows, nil
}

func (f *fakeCalendarRepo) GetByWeekday(_ context.Context, weekday time.Weekday) ([]*domain.CalendarWindow, error) {
	result := make([]*domain.CalendarWindow, 0)
	for _, w := range f.windows {
		if w.Weekday == weekday && w.HolidayID == nil {
			result = append(result, w)
		}
	}
	return result, nil
}

func (f *fakeCalendarRepo) GetByHoliday(_ context.Context, holidayID int64) ([]*domain.CalendarWindow, error) {
	return f.holidayWindows, nil
}

func (f *fakeCalendarRepo) CreateWindow(_ context.Context, window *domain.CalendarWindow) (*domain.CalendarWindow, error) {
	window.ID = 100
	window.CreatedAt = time.Now()
	window.UpdatedAt = window.CreatedAt
	f.created = window
	return window, nil
}

func (f *fakeCalendarRepo) DeleteWindow(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = id
	return nil
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

func mondayWindow(id int64, start, end string) *domain.CalendarWindow {
	return &domain.CalendarWindow{
		ID:        id,
		Weekday:   time.Monday,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func newTestService(repo *fakeCalendarRepo) *Service {
	return NewService(repo, &fakeUserClient{granted: map[int64]bool{1: true}}, nopLogger{})
}

func TestListWindows(t *testing.T) {
	repo := &fakeCalendarRepo{windows: []*domain.CalendarWindow{
		mondayWindow(1, "09:00", "13:00"),
		mondayWindow(2, "14:00", "20:00"),
	}}
	svc := newTestService(repo)

	resp, err := svc.ListWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
	assert.Equal(t, "20:00", resp.Windows[1].EndTime)
}

func TestCreateWindow_Success(t *testing.T) {
	repo := &fakeCalendarRepo{windows: []*domain.CalendarWindow{
		mondayWindow(1, "09:00", "13:00"),
	}}
	svc := newTestService(repo)

	resp, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		RequesterID: 1,
		Weekday:     1,
		StartTime:   "14:00",
		EndTime:     "20:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "14:00", resp.StartTime)
}

func TestCreateWindow_Overlap(t *testing.T) {
	repo := &fakeCalendarRepo{windows: []*domain.CalendarWindow{
		mondayWindow(1, "09:00", "13:00"),
	}}
	svc := newTestService(repo)

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		RequesterID: 1,
		Weekday:     1,
		StartTime:   "12:00",
		EndTime:     "18:00",
	})
	assert.ErrorIs(t, err, ErrWindowOverlap)
	assert.Nil(t, repo.created)
}

func TestCreateWindow_AdjacentAllowed(t *testing.T) {
	repo := &fakeCalendarRepo{windows: []*domain.CalendarWindow{
		mondayWindow(1, "09:00", "13:00"),
	}}
	svc := newTestService(repo)

	// Окно впритык к существующему - не пересечение
	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		RequesterID: 1,
		Weekday:     1,
		StartTime:   "13:00",
		EndTime:     "18:00",
	})
	require.NoError(t, err)
}

func TestCreateWindow_HolidayCheckedAgainstHolidaySiblings(t *testing.T) {
	// Обычное окно понедельника не мешает окну праздника на то же время
	repo := &fakeCalendarRepo{
		windows:        []*domain.CalendarWindow{mondayWindow(1, "09:00", "13:00")},
		holidayWindows: nil,
	}
	svc := newTestService(repo)

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		RequesterID: 1,
		Weekday:     1,
		StartTime:   "10:00",
		EndTime:     "12:00",
		HolidayID:   ptr.Ptr(int64(4)),
	})
	require.NoError(t, err)
}

func TestCreateWindow_AccessDenied(t *testing.T) {
	svc := newTestService(&fakeCalendarRepo{})

	_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
		RequesterID: 99,
		Weekday:     1,
		StartTime:   "09:00",
		EndTime:     "13:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateWindow_InvalidInterval(t *testing.T) {
	svc := newTestService(&fakeCalendarRepo{})

	tests := []struct {
		name       string
		weekday    int
		start, end string
	}{
		{"start equals end", 1, "10:00", "10:00"},
		{"start after end", 1, "18:00", "09:00"},
		{"bad format", 1, "9:00", "13:00"},
		{"bad weekday", 7, "09:00", "13:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateWindow(context.Background(), &models.CreateWindowRequest{
				RequesterID: 1,
				Weekday:     tt.weekday,
				StartTime:   tt.start,
				EndTime:     tt.end,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteWindow(t *testing.T) {
	repo := &fakeCalendarRepo{}
	svc := newTestService(repo)

	require.NoError(t, svc.DeleteWindow(context.Background(), 5, 1))
	assert.Equal(t, int64(5), repo.deleted)
}

func TestDeleteWindow_NotFound(t *testing.T) {
	repo := &fakeCalendarRepo{deleteErr: calendarRepo.ErrWindowNotFound}
	svc := newTestService(repo)

	err := svc.DeleteWindow(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestDeleteWindow_AccessDenied(t *testing.T) {
	svc := newTestService(&fakeCalendarRepo{})

	err := svc.DeleteWindow(context.Background(), 5, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
