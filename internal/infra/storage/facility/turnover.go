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
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// GetTurnoverConfig получает настройки перехода площадки вместе с правилами.
// Если настройки не сохранялись, возвращается конфигурация по умолчанию (интервал 8 часов).
func (r *Repository) GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"block_time",
		"interval_hours",
		"wake_floor",
		"updated_at",
	).
		From("facility_turnover_settings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTurnoverConfig - build select query: %v", ErrBuildQuery, err)
	}

	cfg := domain.DefaultTurnoverConfig(facilityID)

	var blockTime, wakeFloor types.TimeString
	var intervalHours sql.NullInt32
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&blockTime, &intervalHours, &wakeFloor, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// настроек нет - работают значения по умолчанию
	case err != nil:
		return nil, fmt.Errorf("%w: GetTurnoverConfig - scan settings: %w", ErrScanRow, err)
	default:
		if !blockTime.IsZero() {
			cfg.BlockTime = &blockTime
		}
		if !wakeFloor.IsZero() {
			cfg.WakeFloor = &wakeFloor
		}
		if intervalHours.Valid {
			h := int(intervalHours.Int32)
			cfg.IntervalHours = &h
		}
		cfg.UpdatedAt = updatedAt.Time
	}

	rules, err := r.listRules(ctx, executor, facilityID)
	if err != nil {
		return nil, err
	}
	cfg.Rules = rules

	return cfg, nil
}

func (r *Repository) listRules(ctx context.Context, executor DBExecutor, facilityID int64) ([]domain.TurnoverRule, error) {
	query, args, err := psqlbuilder.Select(
		"funeral_time",
		"min_wake_time",
		"is_forbidden",
	).
		From("turnover_rules").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("funeral_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listRules - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.TurnoverRule, 0)
	for rows.Next() {
		var rule domain.TurnoverRule
		var minWake types.TimeString
		if err := rows.Scan(&rule.FuneralTime, &minWake, &rule.IsForbidden); err != nil {
			return nil, fmt.Errorf("%w: listRules - scan rule: %w", ErrScanRow, err)
		}
		if !minWake.IsZero() {
			rule.MinWakeTime = &minWake
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listRules - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// SaveTurnoverConfig полностью заменяет настройки и правила площадки.
// Должен вызываться внутри транзакции (txmanager.Do), чтобы замена правил была атомарной.
func (r *Repository) SaveTurnoverConfig(ctx context.Context, cfg *domain.FacilityTurnoverConfig) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var intervalHours interface{}
	if cfg.IntervalHours != nil {
		intervalHours = *cfg.IntervalHours
	}

	query, args, err := psqlbuilder.Insert("facility_turnover_settings").
		Columns("facility_id", "block_time", "interval_hours", "wake_floor").
		Values(cfg.FacilityID, timeValue(cfg.BlockTime), intervalHours, timeValue(cfg.WakeFloor)).
		Suffix(`ON CONFLICT (facility_id) DO UPDATE SET
			block_time = EXCLUDED.block_time,
			interval_hours = EXCLUDED.interval_hours,
			wake_floor = EXCLUDED.wake_floor,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveTurnoverConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.UpdatedAt); err != nil {
		return fmt.Errorf("%w: SaveTurnoverConfig - upsert settings: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("turnover_rules").
		Where(squirrel.Eq{"facility_id": cfg.FacilityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveTurnoverConfig - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveTurnoverConfig - delete rules: %w", ErrExecQuery, err)
	}

	if !cfg.HasRules() {
		return nil
	}

	insert := psqlbuilder.Insert("turnover_rules").
		Columns("facility_id", "funeral_time", "min_wake_time", "is_forbidden")
	for _, rule := range cfg.Rules {
		minWake := rule.MinWakeTime
		if rule.IsForbidden {
			minWake = nil
		}
		insert = insert.Values(cfg.FacilityID, rule.FuneralTime, timeValue(minWake), rule.IsForbidden)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveTurnoverConfig - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveTurnoverConfig - insert rules: %w", ErrExecQuery, err)
	}

	return nil
}

func timeValue(t *types.TimeString) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}
