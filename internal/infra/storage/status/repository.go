package status

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/evelone226/salon-appointment-service/internal/domain"
	"github.com/evelone226/salon-appointment-service/pkg/dbmetrics"
	"github.com/evelone226/salon-appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий справочника статусов записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория статусов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByName получает статус по имени прямым keyed-запросом
func (r *Repository) GetByName(ctx context.Context, name domain.StatusName) (*domain.AppointmentStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"created_at",
		"updated_at",
	).
		From("appointment_statuses").
		Where(squirrel.Eq{"name": string(name)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	var status domain.AppointmentStatus
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&status.ID,
		&status.Name,
		&status.Description,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStatusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan status: %v", ErrScanRow, err)
	}

	status.CreatedAt = createdAt.Time
	status.UpdatedAt = updatedAt.Time

	return &status, nil
}

// GetAll возвращает весь справочник статусов
func (r *Repository) GetAll(ctx context.Context) ([]*domain.AppointmentStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"created_at",
		"updated_at",
	).
		From("appointment_statuses").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	statuses := make([]*domain.AppointmentStatus, 0)

	for rows.Next() {
		var status domain.AppointmentStatus
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&status.ID,
			&status.Name,
			&status.Description,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		status.CreatedAt = createdAt.Time
		status.UpdatedAt = updatedAt.Time

		statuses = append(statuses, &status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return statuses, nil
}
