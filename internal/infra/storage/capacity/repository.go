package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HallBookingService/pkg/psqlbuilder"
)

// Repository репозиторий дневной вместимости залов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вместимости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCapacity возвращает максимум бронирований зала на дату; nil, если не задан.
// Внутри транзакции строка блокируется, чтобы изменение лимита не пересеклось с регистрацией.
func (r *Repository) GetCapacity(ctx context.Context, hallID int64, date time.Time) (*int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("max_count").
		From("daily_capacities").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacity - build select query: %v", ErrBuildQuery, err)
	}

	var maxCount int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&maxCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacity - scan max_count: %w", ErrScanRow, err)
	}

	return &maxCount, nil
}

// ListCapacities возвращает вместимость зала за период (включительно)
func (r *Repository) ListCapacities(ctx context.Context, hallID int64, from, to time.Time) ([]*domain.DailyCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("hall_id", "date", "max_count", "updated_at").
		From("daily_capacities").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCapacities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCapacities - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	capacities := make([]*domain.DailyCapacity, 0)
	for rows.Next() {
		var c domain.DailyCapacity
		if err := rows.Scan(&c.HallID, &c.Date, &c.MaxCount, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListCapacities - scan row: %w", ErrScanRow, err)
		}
		capacities = append(capacities, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCapacities - rows error: %w", ErrScanRow, err)
	}

	return capacities, nil
}

// SetCapacity задает лимит зала на дату
func (r *Repository) SetCapacity(ctx context.Context, hallID int64, date time.Time, maxCount int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("daily_capacities").
		Columns("hall_id", "date", "max_count").
		Values(hallID, date.Format(domain.DateFormat), maxCount).
		Suffix("ON CONFLICT (hall_id, date) DO UPDATE SET max_count = EXCLUDED.max_count, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCapacity - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetCapacity - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// ClearCapacity удаляет лимит зала на дату (регистрация снова невозможна)
func (r *Repository) ClearCapacity(ctx context.Context, hallID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("daily_capacities").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearCapacity - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearCapacity - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}
