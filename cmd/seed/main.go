package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HallBookingService/internal/config"
	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/infra/cache"
	capacityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/capacity"
	dayTypeRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/daytype"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/migrations"
	"github.com/m04kA/SMC-HallBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	seedPath := flag.String("file", "seeds/example.yaml", "path to YAML seed file")
	migrate := flag.Bool("migrate", false, "apply migrations before seeding")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	seed, err := LoadSeedFile(*seedPath)
	if err != nil {
		log.Fatal("Invalid seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	ctx := context.Background()
	wrappedDB := dbmetrics.Wrap(db, nil, "seed")

	if *migrate {
		if err := applyMigrations(ctx, wrappedDB); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied")
	}

	// Сервис кэширует настройки и рокуё: после пересева соответствующие ключи сбрасываются
	var redisClient *redis.Client
	if cfg.Redis.CacheEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	store := cache.NewStore(redisClient, cfg.Redis.CacheTTL(), cache.KeyPrefix, nil, log)

	facilities := facilityRepo.NewRepository(wrappedDB)
	dayTypes := dayTypeRepo.NewRepository(wrappedDB)

	s := &seeder{
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		facilities:   facilities,
		capacities:   capacityRepo.NewRepository(wrappedDB),
		dayTypes:     dayTypes,
		configCache:  cache.NewTurnoverConfigs(facilities, store),
		dayTypeCache: cache.NewDayTypes(dayTypes, store),
		today:        time.Now().In(cfg.Booking.Location()),
		logger:       log,
	}

	if err := s.run(ctx, seed); err != nil {
		log.Fatal("Seeding failed: %v", err)
	}
	log.Info("Seeding finished: %d facilities, %d rokuyo dates", len(seed.Facilities), len(seed.Rokuyo))
}

func applyMigrations(ctx context.Context, db *dbmetrics.DB) error {
	scripts, err := migrations.Up()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for i, script := range scripts {
		if _, err := db.ExecContext(ctx, script); err != nil {
			return fmt.Errorf("migration #%d: %w", i+1, err)
		}
	}
	return nil
}

// configInvalidator сбрасывает кэш настроек площадки
type configInvalidator interface {
	Invalidate(ctx context.Context, facilityID int64) error
}

// dayTypeInvalidator сбрасывает кэш рокуё по датам
type dayTypeInvalidator interface {
	Invalidate(ctx context.Context, dates ...time.Time) error
}

type seedLogger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

type seeder struct {
	txManager    *txmanager.TransactionManager
	facilities   *facilityRepo.Repository
	capacities   *capacityRepo.Repository
	dayTypes     *dayTypeRepo.Repository
	configCache  configInvalidator
	dayTypeCache dayTypeInvalidator
	today        time.Time
	logger       seedLogger
}

func (s *seeder) run(ctx context.Context, seed *SeedFile) error {
	facilityIDs := make([]int64, 0, len(seed.Facilities))
	for i := range seed.Facilities {
		id, err := s.seedFacility(ctx, &seed.Facilities[i])
		if err != nil {
			return err
		}
		facilityIDs = append(facilityIDs, id)
	}

	days, err := seed.DayTypes()
	if err != nil {
		return err
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	if err := s.dayTypes.UpsertDayTypes(ctx, days); err != nil {
		return fmt.Errorf("save rokuyo: %w", err)
	}

	s.invalidateCaches(ctx, facilityIDs, days)
	return nil
}

// invalidateCaches сбрасывает кэш после записи. Ошибка не фатальна: запись истечет по TTL
func (s *seeder) invalidateCaches(ctx context.Context, facilityIDs []int64, days []domain.DayType) {
	for _, id := range facilityIDs {
		if err := s.configCache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("Failed to invalidate turnover config cache for facility=%d: %v", id, err)
		}
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	if err := s.dayTypeCache.Invalidate(ctx, dates...); err != nil {
		s.logger.Warn("Failed to invalidate rokuyo cache for %d dates: %v", len(dates), err)
	}
}

// seedFacility площадка, ее правила и залы пишутся одной транзакцией
func (s *seeder) seedFacility(ctx context.Context, fs *FacilitySeed) (int64, error) {
	var facilityID int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		facility, err := s.facilities.UpsertFacility(txCtx, fs.Facility())
		if err != nil {
			return fmt.Errorf("facility %q: %w", fs.Name, err)
		}
		facilityID = facility.ID

		cfg := fs.TurnoverConfig(facility.ID)
		turnover.Canonicalize(cfg)
		if err := s.facilities.SaveTurnoverConfig(txCtx, cfg); err != nil {
			return fmt.Errorf("facility %q turnover config: %w", fs.Name, err)
		}

		for _, hs := range fs.Halls {
			_, err := s.facilities.UpsertHall(txCtx, &domain.Hall{
				FacilityID:     facility.ID,
				Name:           hs.Name,
				Capacity:       hs.Capacity,
				HasWaitingRoom: hs.HasWaitingRoom,
				IsActive:       true,
			})
			if err != nil {
				return fmt.Errorf("facility %q hall %q: %w", fs.Name, hs.Name, err)
			}
		}

		halls, err := s.facilities.ListHalls(txCtx, facility.ID)
		if err != nil {
			return fmt.Errorf("facility %q halls: %w", fs.Name, err)
		}

		if fs.Capacity != nil {
			for _, hall := range halls {
				for d := 0; d < fs.Capacity.Days; d++ {
					date := s.today.AddDate(0, 0, d)
					if err := s.capacities.SetCapacity(txCtx, hall.ID, date, fs.Capacity.MaxCount); err != nil {
						return fmt.Errorf("hall %q capacity %s: %w", hall.Name, date.Format(domain.DateFormat), err)
					}
				}
			}
		}

		s.logger.Info("Seeded facility %q (id=%d): %d rules, %d halls", fs.Name, facility.ID, len(cfg.Rules), len(halls))
		return nil
	})
	return facilityID, err
}
