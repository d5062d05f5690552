package daytype

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

// Repository репозиторий календаря рокуё (только чтение для бронирований, запись - сидирование)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDayType возвращает тип дня; nil без ошибки, если дата не засеяна
func (r *Repository) GetDayType(ctx context.Context, date time.Time) (*domain.DayType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date", "rokuyo", "is_tomobiki").
		From("rokuyo").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayType - build select query: %v", ErrBuildQuery, err)
	}

	var dt domain.DayType
	err = executor.QueryRowContext(ctx, query, args...).Scan(&dt.Date, &dt.Rokuyo, &dt.IsTomobiki)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayType - scan row: %w", ErrScanRow, err)
	}

	return &dt, nil
}

// UpsertDayTypes сохраняет пачку дат календаря
func (r *Repository) UpsertDayTypes(ctx context.Context, days []domain.DayType) error {
	if len(days) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("rokuyo").Columns("date", "rokuyo", "is_tomobiki")
	for _, d := range days {
		insert = insert.Values(d.Date.Format(domain.DateFormat), d.Rokuyo, d.IsTomobiki)
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (date) DO UPDATE SET rokuyo = EXCLUDED.rokuyo, is_tomobiki = EXCLUDED.is_tomobiki").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertDayTypes - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDayTypes - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
