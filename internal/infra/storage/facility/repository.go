package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HallBookingService/pkg/psqlbuilder"
)

// Repository репозиторий площадок, залов и настроек перехода 葬儀 → 通夜
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetFacility получает площадку по ID
func (r *Repository) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"area",
		"phone",
		"start_hour",
		"end_hour",
		"is_active",
		"created_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFacility - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.Facility
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.Name,
		&f.Area,
		&f.Phone,
		&f.StartHour,
		&f.EndHour,
		&f.IsActive,
		&f.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacility - scan facility: %w", ErrScanRow, err)
	}

	return &f, nil
}

// GetHall получает зал по ID
func (r *Repository) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hallColumns...).
		From("halls").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHall - build select query: %v", ErrBuildQuery, err)
	}

	hall, err := scanHall(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHall - scan hall: %w", ErrScanRow, err)
	}

	return hall, nil
}

// ListHalls получает залы площадки
func (r *Repository) ListHalls(ctx context.Context, facilityID int64) ([]*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hallColumns...).
		From("halls").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHalls - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHalls - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	halls := make([]*domain.Hall, 0)
	for rows.Next() {
		hall, err := scanHall(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListHalls - scan hall: %w", ErrScanRow, err)
		}
		halls = append(halls, hall)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHalls - rows error: %w", ErrScanRow, err)
	}

	return halls, nil
}

// UpsertFacility создает или обновляет площадку по имени (используется сидированием)
func (r *Repository) UpsertFacility(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns("name", "area", "phone", "start_hour", "end_hour", "is_active").
		Values(f.Name, f.Area, f.Phone, f.StartHour, f.EndHour, f.IsActive).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			area = EXCLUDED.area,
			phone = EXCLUDED.phone,
			start_hour = EXCLUDED.start_hour,
			end_hour = EXCLUDED.end_hour,
			is_active = EXCLUDED.is_active
		RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertFacility - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertFacility - execute insert: %w", ErrExecQuery, err)
	}

	return f, nil
}

// UpsertHall создает или обновляет зал по (facility_id, name)
func (r *Repository) UpsertHall(ctx context.Context, h *domain.Hall) (*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("halls").
		Columns("facility_id", "name", "capacity", "has_waiting_room", "is_active").
		Values(h.FacilityID, h.Name, h.Capacity, h.HasWaitingRoom, h.IsActive).
		Suffix(`ON CONFLICT (facility_id, name) DO UPDATE SET
			capacity = EXCLUDED.capacity,
			has_waiting_room = EXCLUDED.has_waiting_room,
			is_active = EXCLUDED.is_active
		RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertHall - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertHall - execute insert: %w", ErrExecQuery, err)
	}

	return h, nil
}

var hallColumns = []string{
	"id",
	"facility_id",
	"name",
	"capacity",
	"has_waiting_room",
	"is_active",
	"created_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHall(row rowScanner) (*domain.Hall, error) {
	var h domain.Hall
	err := row.Scan(
		&h.ID,
		&h.FacilityID,
		&h.Name,
		&h.Capacity,
		&h.HasWaitingRoom,
		&h.IsActive,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
