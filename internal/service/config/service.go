package config

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/service/config/models"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// Service сервис настроек перехода похороны -> поминки
type Service struct {
	reader       ConfigReader
	writer       ConfigWriter
	facilityRepo FacilityRepository
	cache        CacheInvalidator
	txManager    TransactionManager
	publisher    EventPublisher
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	reader ConfigReader,
	writer ConfigWriter,
	facilityRepo FacilityRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reader:       reader,
		writer:       writer,
		facilityRepo: facilityRepo,
		cache:        cache,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetConfig получает конфигурацию площадки.
// Если площадка ничего не настраивала, возвращаются значения по умолчанию
func (s *Service) GetConfig(ctx context.Context, facilityID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: facility=%d", facilityID)

	cfg, err := s.loadConfig(ctx, "GetConfig", facilityID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConfig(cfg), nil
}

// UpdateConfig полностью заменяет правила и параметры площадки
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: facility=%d, rules=%d", req.FacilityID, len(req.Rules))

	// 1. Проверяем конфигурацию до обращения к БД
	cfg := req.ToDomainConfig()
	if err := turnover.ValidateConfig(cfg); err != nil {
		s.logger.Warn("UpdateConfig: invalid config for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	turnover.Canonicalize(cfg)
	sort.SliceStable(cfg.Rules, func(i, j int) bool {
		return cfg.Rules[i].FuneralTime.IsBefore(cfg.Rules[j].FuneralTime)
	})

	// 2. Проверяем существование площадки
	if err := s.ensureFacility(ctx, "UpdateConfig", req.FacilityID); err != nil {
		return nil, err
	}

	// 3. Заменяем настройки и правила атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.writer.SaveTurnoverConfig(txCtx, cfg)
	})
	if err != nil {
		s.logger.Error("UpdateConfig: failed to save config for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - save config: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш. Ошибка не фатальна: запись истечет по TTL
	if err := s.cache.Invalidate(ctx, req.FacilityID); err != nil {
		s.logger.Warn("UpdateConfig: failed to invalidate cache for facility=%d: %v", req.FacilityID, err)
	}

	s.publisher.Publish(events.Event{
		Type:       events.TurnoverConfigChanged,
		FacilityID: req.FacilityID,
	})

	s.logger.Info("UpdateConfig: saved config for facility=%d (%d rules, block=%v, interval=%dh)",
		req.FacilityID, len(cfg.Rules), ptr.Deref(cfg.BlockTime, ""), cfg.EffectiveIntervalHours())
	return models.FromDomainConfig(cfg), nil
}

// PreviewWakeConstraint показывает, какое минимальное время поминок получится
// для заданного времени похорон (симулятор в настройках площадки)
func (s *Service) PreviewWakeConstraint(ctx context.Context, facilityID int64, funeralTime *types.TimeString) (*models.WakeConstraintResponse, error) {
	s.logger.Info("PreviewWakeConstraint: facility=%d, funeral=%v", facilityID, ptr.Deref(funeralTime, ""))

	if funeralTime != nil {
		if err := funeralTime.Validate(); err != nil {
			s.logger.Warn("PreviewWakeConstraint: invalid funeral time %q", *funeralTime)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		canonical := funeralTime.Canonical()
		funeralTime = &canonical
	}

	cfg, err := s.loadConfig(ctx, "PreviewWakeConstraint", facilityID)
	if err != nil {
		return nil, err
	}

	constraint, err := turnover.ResolveWakeConstraint(cfg, funeralTime)
	if err != nil {
		s.logger.Error("PreviewWakeConstraint: stored config of facility=%d is malformed: %v", facilityID, err)
		return nil, fmt.Errorf("%w: PreviewWakeConstraint - resolve: %v", ErrInternal, err)
	}

	resp := &models.WakeConstraintResponse{
		FacilityID:    facilityID,
		FuneralTime:   funeralTime,
		IsForbidden:   constraint.IsForbidden,
		Source:        constraintSource(constraint),
		IntervalHours: cfg.EffectiveIntervalHours(),
	}
	if constraint.MinWakeMinutes != nil {
		resp.MinWakeTime = ptr.Ptr(constraint.MinWakeTime())
		resp.NextDay = *constraint.MinWakeMinutes >= types.MinutesPerDay
	}

	return resp, nil
}

func (s *Service) loadConfig(ctx context.Context, op string, facilityID int64) (*domain.FacilityTurnoverConfig, error) {
	if err := s.ensureFacility(ctx, op, facilityID); err != nil {
		return nil, err
	}

	cfg, err := s.reader.GetTurnoverConfig(ctx, facilityID)
	if err != nil {
		s.logger.Error("%s: failed to get config for facility=%d: %v", op, facilityID, err)
		return nil, fmt.Errorf("%w: %s - get config: %v", ErrInternal, op, err)
	}
	return cfg, nil
}

func (s *Service) ensureFacility(ctx context.Context, op string, facilityID int64) error {
	if _, err := s.facilityRepo.GetFacility(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("%s: facility id=%d not found", op, facilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("%s: failed to get facility id=%d: %v", op, facilityID, err)
		return fmt.Errorf("%w: %s - get facility: %v", ErrInternal, op, err)
	}
	return nil
}

func constraintSource(c turnover.Constraint) string {
	switch {
	case c.MatchedRule != nil:
		return models.SourceRule
	case c.ByBlockTime:
		return models.SourceBlock
	case c.MinWakeMinutes != nil:
		return models.SourceInterval
	default:
		return models.SourceNone
	}
}
