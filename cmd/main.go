package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/get_booking"
	getCapacitiesHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/get_capacities"
	getHallBookingsHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/get_hall_bookings"
	getTurnoverConfigHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/get_turnover_config"
	getWakeConstraintHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/get_wake_constraint"
	setCapacityHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/set_capacity"
	updateBookingHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/update_booking"
	updateTurnoverConfigHandler "github.com/m04kA/SMC-HallBookingService/internal/api/handlers/update_turnover_config"
	"github.com/m04kA/SMC-HallBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HallBookingService/internal/config"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
	"github.com/m04kA/SMC-HallBookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/booking"
	capacityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/capacity"
	dayTypeRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/daytype"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	bookingsService "github.com/m04kA/SMC-HallBookingService/internal/service/bookings"
	capacityService "github.com/m04kA/SMC-HallBookingService/internal/service/capacity"
	configService "github.com/m04kA/SMC-HallBookingService/internal/service/config"
	createBookingUC "github.com/m04kA/SMC-HallBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-HallBookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/SMC-HallBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-HallBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/metrics"
	"github.com/m04kA/SMC-HallBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-HallBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики. nil коллектор безопасен: все методы *metrics.Metrics проверяют получателя
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка нужна всегда: через нее работают транзакции в контексте
	var collector dbmetrics.Collector
	if metricsCollector != nil {
		collector = metricsCollector
	}
	wrappedDB := dbmetrics.WrapWithDefault(db, collector, cfg.Metrics.ServiceName, stopMetricsCh)

	txOpts := []txmanager.Option{txmanager.WithMaxRetries(cfg.Booking.TxMaxRetries)}
	if metricsCollector != nil {
		txOpts = append(txOpts, txmanager.WithRetryObserver(metricsCollector))
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)

	// Redis кэш (опционально)
	var redisClient *redis.Client
	if cfg.Redis.CacheEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, cache disabled: %v", cfg.Redis.Addr, err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			log.Info("Redis cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.CacheTTL())
			defer redisClient.Close()
		}
		cancel()
	}
	var cacheRecorder cache.Recorder
	if metricsCollector != nil {
		cacheRecorder = metricsCollector
	}
	cacheStore := cache.NewStore(redisClient, cfg.Redis.CacheTTL(), cache.KeyPrefix, cacheRecorder, log)

	// Шина событий
	bus := events.NewBus(func(event events.Event, err error) {
		log.Error("Event handler failed: type=%s, hall_id=%d, error=%v", event.Type, event.HallID, err)
	})
	logEvent := func(event events.Event) error {
		log.Info("Event %s: facility_id=%d, hall_id=%d, date=%s",
			event.Type, event.FacilityID, event.HallID, event.Date.Format("2006-01-02"))
		return nil
	}
	bus.Subscribe(logEvent,
		events.BookingCreated,
		events.BookingUpdated,
		events.BookingDeleted,
		events.CapacityChanged,
		events.TurnoverConfigChanged,
	)

	// Репозитории. Внутри транзакций используются репозитории без кэша
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	facilityRepository := facilityRepo.NewRepository(wrappedDB)
	capacityRepository := capacityRepo.NewRepository(wrappedDB)
	dayTypeRepository := dayTypeRepo.NewRepository(wrappedDB)

	cachedConfigs := cache.NewTurnoverConfigs(facilityRepository, cacheStore)
	cachedDayTypes := cache.NewDayTypes(dayTypeRepository, cacheStore)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		facilityRepository,
		bus,
		log,
	)
	configSvc := configService.NewService(
		cachedConfigs,
		facilityRepository,
		facilityRepository,
		cachedConfigs,
		txMgr,
		bus,
		log,
	)
	capacitySvc := capacityService.NewService(
		capacityRepository,
		bookingRepository,
		facilityRepository,
		txMgr,
		bus,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		facilityRepository,
		capacityRepository,
		dayTypeRepository,
		txMgr,
		metricsCollector,
		bus,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		facilityRepository,
		capacityRepository,
		dayTypeRepository,
		txMgr,
		metricsCollector,
		bus,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		cachedConfigs,
		capacityRepository,
		cachedDayTypes,
		&getAvailableSlotsUC.RealTimeProvider{Location: cfg.Booking.Location()},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getHallBookings := getHallBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getTurnoverConfig := getTurnoverConfigHandler.NewHandler(configSvc, log)
	updateTurnoverConfig := updateTurnoverConfigHandler.NewHandler(configSvc, log)
	getWakeConstraint := getWakeConstraintHandler.NewHandler(configSvc, log)
	getCapacities := getCapacitiesHandler.NewHandler(capacitySvc, log)
	setCapacity := setCapacityHandler.NewHandler(capacitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Warn("GET /healthz - Database unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Настройки площадок ---
	api.HandleFunc("/facilities/{facilityId}/turnover-config", getTurnoverConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}/turnover-config", updateTurnoverConfig.Handle).Methods(http.MethodPut)
	api.HandleFunc("/facilities/{facilityId}/wake-constraint", getWakeConstraint.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Залы ---
	api.HandleFunc("/halls/{hallId}/bookings", getHallBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/halls/{hallId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/halls/{hallId}/capacities", getCapacities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/halls/{hallId}/capacities/{date}", setCapacity.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
