package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// SeedFile содержимое YAML файла с начальными данными
type SeedFile struct {
	Facilities []FacilitySeed `yaml:"facilities"`
	Rokuyo     []RokuyoSeed   `yaml:"rokuyo"`
}

// FacilitySeed площадка с залами и правилами перехода
type FacilitySeed struct {
	Name      string        `yaml:"name"`
	Area      *string       `yaml:"area"`
	Phone     *string       `yaml:"phone"`
	StartHour *int          `yaml:"start_hour"`
	EndHour   *int          `yaml:"end_hour"`
	Turnover  TurnoverSeed  `yaml:"turnover"`
	Halls     []HallSeed    `yaml:"halls"`
	Capacity  *CapacitySeed `yaml:"capacity"`
}

// TurnoverSeed правила перехода площадки
type TurnoverSeed struct {
	BlockTime     *string    `yaml:"block_time"`
	IntervalHours *int       `yaml:"interval_hours"`
	WakeFloor     *string    `yaml:"wake_floor"`
	Rules         []RuleSeed `yaml:"rules"`
}

// RuleSeed правило для конкретного времени похорон
type RuleSeed struct {
	FuneralTime string  `yaml:"funeral_time"`
	MinWakeTime *string `yaml:"min_wake_time"`
	Forbidden   bool    `yaml:"forbidden"`
}

// HallSeed зал площадки
type HallSeed struct {
	Name           string `yaml:"name"`
	Capacity       *int   `yaml:"capacity"`
	HasWaitingRoom bool   `yaml:"has_waiting_room"`
}

// CapacitySeed лимит, проставляемый всем залам на ближайшие Days дней
type CapacitySeed struct {
	MaxCount int `yaml:"max_count"`
	Days     int `yaml:"days"`
}

// RokuyoSeed рокуё на дату
type RokuyoSeed struct {
	Date   string `yaml:"date"`
	Rokuyo string `yaml:"rokuyo"`
}

// LoadSeedFile читает и проверяет YAML файл
func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return ParseSeed(raw)
}

// ParseSeed разбирает YAML и проверяет конфигурации площадок
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i := range seed.Facilities {
		f := &seed.Facilities[i]
		if f.Name == "" {
			return nil, fmt.Errorf("facility #%d: name is required", i+1)
		}
		if err := turnover.ValidateConfig(f.TurnoverConfig(0)); err != nil {
			return nil, fmt.Errorf("facility %q: %w", f.Name, err)
		}
		if c := f.Capacity; c != nil && (c.MaxCount < domain.MinDailyCapacity || c.MaxCount > domain.MaxDailyCapacity || c.Days < 0) {
			return nil, fmt.Errorf("facility %q: capacity %d for %d days out of range", f.Name, c.MaxCount, c.Days)
		}
	}

	if _, err := seed.DayTypes(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Facility доменная модель площадки, часы работы по умолчанию 9-18
func (f *FacilitySeed) Facility() *domain.Facility {
	facility := &domain.Facility{
		Name:      f.Name,
		Area:      f.Area,
		Phone:     f.Phone,
		StartHour: domain.DefaultStartHour,
		EndHour:   domain.DefaultEndHour,
		IsActive:  true,
	}
	if f.StartHour != nil {
		facility.StartHour = *f.StartHour
	}
	if f.EndHour != nil {
		facility.EndHour = *f.EndHour
	}
	return facility
}

// TurnoverConfig доменная конфигурация переходов площадки facilityID
func (f *FacilitySeed) TurnoverConfig(facilityID int64) *domain.FacilityTurnoverConfig {
	cfg := &domain.FacilityTurnoverConfig{
		FacilityID:    facilityID,
		Rules:         make([]domain.TurnoverRule, 0, len(f.Turnover.Rules)),
		BlockTime:     optionalTime(f.Turnover.BlockTime),
		IntervalHours: f.Turnover.IntervalHours,
		WakeFloor:     optionalTime(f.Turnover.WakeFloor),
	}
	for _, r := range f.Turnover.Rules {
		cfg.Rules = append(cfg.Rules, domain.TurnoverRule{
			FuneralTime: types.TimeString(r.FuneralTime),
			MinWakeTime: optionalTime(r.MinWakeTime),
			IsForbidden: r.Forbidden,
		})
	}
	return cfg
}

// DayTypes даты календаря, 友引 отмечается автоматически
func (s *SeedFile) DayTypes() ([]domain.DayType, error) {
	days := make([]domain.DayType, 0, len(s.Rokuyo))
	seen := make(map[string]struct{}, len(s.Rokuyo))

	for _, r := range s.Rokuyo {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("rokuyo date %q: %w", r.Date, err)
		}
		if r.Rokuyo == "" {
			return nil, fmt.Errorf("rokuyo date %s: empty value", r.Date)
		}
		if _, dup := seen[r.Date]; dup {
			return nil, errors.New("rokuyo date " + r.Date + " listed twice")
		}
		seen[r.Date] = struct{}{}

		days = append(days, domain.DayType{
			Date:       date,
			Rokuyo:     r.Rokuyo,
			IsTomobiki: r.Rokuyo == domain.RokuyoTomobiki,
		})
	}
	return days, nil
}

func optionalTime(s *string) *types.TimeString {
	if s == nil || *s == "" {
		return nil
	}
	t := types.TimeString(*s)
	return &t
}
