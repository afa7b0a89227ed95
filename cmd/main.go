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

	cancelBookingHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TableBooking/internal/config"
	availabilityCache "github.com/m04kA/SMC-TableBooking/internal/infra/cache/availability"
	bookingRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/booking"
	tableRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-TableBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-TableBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
	updateBookingUC "github.com/m04kA/SMC-TableBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/metrics"
	"github.com/m04kA/SMC-TableBooking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
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

	log.Info("Starting SMC-TableBooking...")
	log.Info("Configuration loaded from %s", configPath)

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

	// Без метрик обёртка просто проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	tableRepository := tableRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш доступности (опционально). Интерфейсы остаются nil, если кэш выключен.
	var (
		availCache   getAvailabilityUC.AvailabilityCache
		serviceCache bookingsService.CacheInvalidator
		createCache  createBookingUC.CacheInvalidator
		updateCache  updateBookingUC.CacheInvalidator
	)
	if cfg.Cache.Enabled {
		redisClient, err := availabilityCache.NewClient(context.Background(), cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		c := availabilityCache.NewCache(redisClient, cfg.Cache.TTLDuration())
		availCache, serviceCache, createCache, updateCache = c, c, c, c
		log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
	}

	// Публикация событий (опционально)
	var publisher bookingsService.EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		writer, err := events.NewKafkaWriter(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.BatchTimeout())
		if err != nil {
			log.Fatal("Failed to create kafka writer: %v", err)
		}
		kafkaPublisher := events.NewPublisher(writer, metricsCollector, log)
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher
		log.Info("Booking events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		serviceCache,
		publisher,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		tableRepository,
		bookingRepository,
		txMgr,
		availCache,
		metricsCollector,
		cfg.Availability.Window(),
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		tableRepository,
		txMgr,
		createCache,
		publisher,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		tableRepository,
		txMgr,
		updateCache,
		publisher,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		// Конфигурация уже проверена в config.Validate
		trustedProxies, _ := cfg.RateLimit.TrustedNets()
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.IdleTTLDuration(),
			trustedProxies,
			log,
		)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.2f req/s, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Доступность столов на дату
	public.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

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
