package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/pkg/dbmetrics"
	"github.com/evelone226/salon-appointment-service/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// appointmentColumns колонки записи вместе с именем статуса из справочника
var appointmentColumns = []string{
	"a.id",
	"a.request_id",
	"a.creator_id",
	"a.client_id",
	"a.staff_id",
	"a.calendar_window_id",
	"a.status_id",
	"s.name",
	"a.service_ids",
	"a.start_time",
	"a.duration_minutes",
	"a.notes",
	"a.cancellation_reason",
	"a.cancelled_by",
	"a.confirmed_at",
	"a.cancelled_at",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись. Если в контексте передана активная транзакция,
// использует её — создание записи выполняется в одной сериализуемой транзакции
// с проверкой пересечений (см. usecase create_appointment).
//
// Гонку check-then-act окончательно закрывает exclusion constraint на уровне
// хранилища (staff_id + интервал времени): конкурентная вставка того же слота
// завершается ErrSlotTaken, а повтор запроса с тем же request_id — ErrDuplicateRequest.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"request_id",
			"creator_id",
			"client_id",
			"staff_id",
			"calendar_window_id",
			"status_id",
			"service_ids",
			"start_time",
			"duration_minutes",
			"notes",
		).
		Values(
			appt.RequestID,
			appt.CreatorID,
			appt.ClientID,
			appt.StaffID,
			appt.CalendarWindowID,
			appt.StatusID,
			pq.Array(appt.ServiceIDs),
			appt.StartTime,
			appt.DurationMinutes,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case pgUniqueViolation:
				return nil, ErrDuplicateRequest
			case pgExclusionViolation:
				return nil, ErrSlotTaken
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"a.id": id})
}

// GetByRequestID получает запись по клиентскому ключу идемпотентности
func (r *Repository) GetByRequestID(ctx context.Context, requestID string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"a.request_id": requestID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Join("appointment_statuses s ON s.id = a.status_id").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appointments[0], nil
}

// FindOverlapping возвращает записи, чей интервал [start, end) пересекается
// с кандидатом. Учитываются только статусы из domain.ConflictStatuses
// (отмененные и no-show записи слот не занимают).
//
// При указанном staffID поиск ограничен этим мастером: два разных мастера
// могут обслуживать пересекающиеся слоты. Внутри транзакции найденные строки
// блокируются FOR UPDATE до вставки новой записи.
func (r *Repository) FindOverlapping(ctx context.Context, start, end time.Time, staffID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Join("appointment_statuses s ON s.id = a.status_id").
		Where(squirrel.Eq{"s.name": conflictStatusStrings()}).
		Where(squirrel.Lt{"a.start_time": end}).
		Where(squirrel.Expr("a.start_time + a.duration_minutes * interval '1 minute' > ?", start)).
		OrderBy("a.start_time ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.staff_id": *staffID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListForDate возвращает активные записи, начинающиеся в указанную дату,
// опционально только для одного мастера. Используется подбором свободных слотов.
func (r *Repository) ListForDate(ctx context.Context, date time.Time, staffID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Join("appointment_statuses s ON s.id = a.status_id").
		Where(squirrel.Eq{"s.name": conflictStatusStrings()}).
		Where(squirrel.GtOrEq{"a.start_time": dayStart}).
		Where(squirrel.Lt{"a.start_time": dayEnd}).
		OrderBy("a.start_time ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.staff_id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListByClient возвращает записи клиента, опционально фильтруя по статусу
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status *domain.StatusName) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"a.client_id": clientID}, status)
}

// ListByStaff возвращает записи мастера, опционально фильтруя по статусу
func (r *Repository) ListByStaff(ctx context.Context, staffID int64, status *domain.StatusName) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"a.staff_id": staffID}, status)
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, status *domain.StatusName) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Join("appointment_statuses s ON s.id = a.status_id").
		Where(where).
		OrderBy("a.start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.name": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus переводит запись из статуса fromStatusID в toStatusID.
// Сравнение со старым статусом в WHERE защищает от конкурентного перехода:
// если строка не обновилась, возвращается ErrStaleStatus и вызывающий код
// перечитывает запись, чтобы выяснить причину.
func (r *Repository) UpdateStatus(ctx context.Context, id, fromStatusID, toStatusID int64) error {
	updateBuilder := psqlbuilder.Update("appointments").
		Set("status_id", toStatusID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status_id": fromStatusID})

	return r.execStatusUpdate(ctx, updateBuilder, "UpdateStatus")
}

// Confirm подтверждает запись: статус + confirmed_at, опционально заметки
func (r *Repository) Confirm(ctx context.Context, id, fromStatusID, toStatusID int64, notes *string) error {
	updateBuilder := psqlbuilder.Update("appointments").
		Set("status_id", toStatusID).
		Set("confirmed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status_id": fromStatusID})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	return r.execStatusUpdate(ctx, updateBuilder, "Confirm")
}

// Cancel отменяет запись с фиксацией причины и инициатора
func (r *Repository) Cancel(ctx context.Context, id, fromStatusID, toStatusID int64, reason *string, cancelledBy int64) error {
	updateBuilder := psqlbuilder.Update("appointments").
		Set("status_id", toStatusID).
		Set("cancellation_reason", reason).
		Set("cancelled_by", cancelledBy).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status_id": fromStatusID})

	return r.execStatusUpdate(ctx, updateBuilder, "Cancel")
}

func (r *Repository) execStatusUpdate(ctx context.Context, builder squirrel.UpdateBuilder, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.RequestID,
			&appt.CreatorID,
			&appt.ClientID,
			&appt.StaffID,
			&appt.CalendarWindowID,
			&appt.StatusID,
			&appt.Status,
			pq.Array(&appt.ServiceIDs),
			&appt.StartTime,
			&appt.DurationMinutes,
			&appt.Notes,
			&appt.CancellationReason,
			&appt.CancelledBy,
			&appt.ConfirmedAt,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func conflictStatusStrings() []string {
	names := make([]string, len(domain.ConflictStatuses))
	for i, s := range domain.ConflictStatuses {
		names[i] = string(s)
	}
	return names
}
