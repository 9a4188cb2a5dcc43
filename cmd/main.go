package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/create_booking"
	getBookingHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/get_venue_bookings"
	getVenueScheduleHandler "github.com/OmarShama/eventorove-booking/internal/api/handlers/get_venue_schedule"
	"github.com/OmarShama/eventorove-booking/internal/api/middleware"
	"github.com/OmarShama/eventorove-booking/internal/config"
	bookingRepo "github.com/OmarShama/eventorove-booking/internal/infra/storage/booking"
	venueRepo "github.com/OmarShama/eventorove-booking/internal/infra/storage/venue"
	"github.com/OmarShama/eventorove-booking/internal/service/availability"
	bookingsService "github.com/OmarShama/eventorove-booking/internal/service/bookings"
	venuesService "github.com/OmarShama/eventorove-booking/internal/service/venues"
	checkAvailabilityUC "github.com/OmarShama/eventorove-booking/internal/usecase/check_availability"
	createBookingUC "github.com/OmarShama/eventorove-booking/internal/usecase/create_booking"
	"github.com/OmarShama/eventorove-booking/pkg/dbmetrics"
	"github.com/OmarShama/eventorove-booking/pkg/logger"
	"github.com/OmarShama/eventorove-booking/pkg/metrics"
	"github.com/OmarShama/eventorove-booking/pkg/simpletxmanager"
	"github.com/OmarShama/eventorove-booking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting eventorove-booking...")
	log.Debug("Config loaded: http_port=%d, log_level=%s, metrics_enabled=%t",
		cfg.Server.HTTPPort, cfg.Logs.Level, cfg.Metrics.Enabled)

	// Инициализируем метрики (если включены)
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

	// Инициализируем репозитории и менеджер транзакций
	// (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		venueRepository   *venueRepo.Repository
		txSerial          createBookingUC.TransactionManager
		txRead            checkAvailabilityUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		venueRepository = venueRepo.NewRepository(wrappedDB)
		txMgr := txmanager.NewTransactionManager(wrappedDB)
		txSerial, txRead = txMgr, txMgr
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		venueRepository = venueRepo.NewRepository(db)
		txMgr := simpletxmanager.NewTransactionManager(db)
		txSerial, txRead = txMgr, txMgr
	}

	// Инициализируем резолвер доступности
	resolver := availability.NewResolver(bookingRepository, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueRepository,
		log,
	)
	venueSvc := venuesService.NewService(venueRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		venueRepository,
		bookingRepository,
		resolver,
		txSerial,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		venueRepository,
		resolver,
		txRead,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getVenueSchedule := getVenueScheduleHandler.NewHandler(venueSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Корреляционный ID для всех запросов
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности площадки для интервала
	api.HandleFunc("/venues/{venueId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Публичное расписание площадки
	api.HandleFunc("/venues/{venueId}/schedule",
		getVenueSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Для владельцев площадок ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

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
