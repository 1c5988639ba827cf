package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/pkg/dbmetrics"
	"github.com/evelone226/salon-appointment-service/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"weekday",
	"start_time",
	"end_time",
	"holiday_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий календаря работы салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday возвращает обычные окна работы для дня недели
// (окна праздников сюда не попадают), отсортированные по началу
func (r *Repository) GetByWeekday(ctx context.Context, weekday time.Weekday) ([]*domain.CalendarWindow, error) {
	return r.listWindows(ctx, squirrel.And{
		squirrel.Eq{"weekday": int(weekday)},
		squirrel.Eq{"holiday_id": nil},
	})
}

// GetByHoliday возвращает окна работы, настроенные для праздника
func (r *Repository) GetByHoliday(ctx context.Context, holidayID int64) ([]*domain.CalendarWindow, error) {
	return r.listWindows(ctx, squirrel.Eq{"holiday_id": holidayID})
}

// GetAllWindows возвращает все окна календаря
func (r *Repository) GetAllWindows(ctx context.Context) ([]*domain.CalendarWindow, error) {
	return r.listWindows(ctx, nil)
}

func (r *Repository) listWindows(ctx context.Context, where interface{}) ([]*domain.CalendarWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("calendar_windows").
		OrderBy("weekday ASC, start_time ASC")

	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.CalendarWindow, 0)

	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// FindHolidayByDate ищет праздник на указанную дату
func (r *Repository) FindHolidayByDate(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	query, args, err := psqlbuilder.Select(
		"id",
		"holiday_date",
		"name",
		"created_at",
		"updated_at",
	).
		From("holidays").
		Where(squirrel.Eq{"holiday_date": day}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindHolidayByDate - build select query: %v", ErrBuildQuery, err)
	}

	var holiday domain.Holiday
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&holiday.ID,
		&holiday.Date,
		&holiday.Name,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindHolidayByDate - scan holiday: %v", ErrScanRow, err)
	}

	holiday.CreatedAt = createdAt.Time
	holiday.UpdatedAt = updatedAt.Time

	return &holiday, nil
}

// CreateWindow создает окно календаря
func (r *Repository) CreateWindow(ctx context.Context, window *domain.CalendarWindow) (*domain.CalendarWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_windows").
		Columns(
			"weekday",
			"start_time",
			"end_time",
			"holiday_id",
		).
		Values(
			int(window.Weekday),
			window.StartTime,
			window.EndTime,
			window.HolidayID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// DeleteWindow удаляет окно календаря
func (r *Repository) DeleteWindow(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

func scanWindow(rows *sql.Rows) (*domain.CalendarWindow, error) {
	var window domain.CalendarWindow
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&window.ID,
		&weekday,
		&window.StartTime,
		&window.EndTime,
		&window.HolidayID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanWindow - scan row: %v", ErrScanRow, err)
	}

	window.Weekday = time.Weekday(weekday)
	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}
