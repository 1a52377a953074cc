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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookSlotHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/book_slot"
	cancelBookingHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/cancel_booking"
	createSheetsHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/create_interviewer_sheets"
	getCurrentBookingHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/get_current_booking"
	getFacultyRegistrationsHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/get_faculty_registrations"
	getOpenDatesHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/get_open_dates"
	getOpenSlotsHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/get_open_slots"
	listFacultiesHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/list_faculties"
	resolveCancellationHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/resolve_cancellation"
	syncAvailabilityHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/sync_availability"
	updatePolicyHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/update_cancellation_policy"
	updateCapacityHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/update_capacity"
	updateLockoutHandler "github.com/zapis-team/ZPS-InterviewService/internal/api/handlers/update_lockout"
	"github.com/zapis-team/ZPS-InterviewService/internal/api/middleware"
	"github.com/zapis-team/ZPS-InterviewService/internal/config"
	"github.com/zapis-team/ZPS-InterviewService/internal/infra/cache"
	availabilityRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/availability"
	cancellationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/cancellation"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	outboxRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/outbox"
	registrationRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/registration"
	capacityRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/slotcapacity"
	userRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/user"
	notifyClient "github.com/zapis-team/ZPS-InterviewService/internal/integrations/notifygateway"
	sheetsClient "github.com/zapis-team/ZPS-InterviewService/internal/integrations/sheets"
	availabilityService "github.com/zapis-team/ZPS-InterviewService/internal/service/availability"
	capacityService "github.com/zapis-team/ZPS-InterviewService/internal/service/capacity"
	facultyService "github.com/zapis-team/ZPS-InterviewService/internal/service/faculty"
	registrationsService "github.com/zapis-team/ZPS-InterviewService/internal/service/registrations"
	bookSlotUC "github.com/zapis-team/ZPS-InterviewService/internal/usecase/book_slot"
	cancelBookingUC "github.com/zapis-team/ZPS-InterviewService/internal/usecase/cancel_booking"
	listOpenSlotsUC "github.com/zapis-team/ZPS-InterviewService/internal/usecase/list_open_slots"
	resolveCancellationUC "github.com/zapis-team/ZPS-InterviewService/internal/usecase/resolve_cancellation"
	"github.com/zapis-team/ZPS-InterviewService/internal/worker/outboxrelay"
	"github.com/zapis-team/ZPS-InterviewService/migrations"
	"github.com/zapis-team/ZPS-InterviewService/pkg/dbmetrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/logger"
	"github.com/zapis-team/ZPS-InterviewService/pkg/metrics"
	"github.com/zapis-team/ZPS-InterviewService/pkg/simpletxmanager"
	"github.com/zapis-team/ZPS-InterviewService/pkg/txmanager"
)

// sheetsBackoffBase пауза после упора в лимиты Sheets API,
// растёт линейно с числом попыток
const sheetsBackoffBase = 30 * time.Second

// systemClock провайдер реального времени для сервисов
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

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

	log.Info("Starting ZPS-InterviewService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Накатываем миграции
	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied")

	// Подключаемся к Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	listingCache := cache.NewListingCache(redisClient, time.Duration(cfg.Redis.ListingTTLSecs)*time.Second)

	// Инициализируем интеграционных клиентов
	sheets, err := sheetsClient.NewClient(context.Background(), cfg.Sheets.CredentialsFile, log)
	if err != nil {
		log.Fatal("Failed to initialize sheets client: %v", err)
	}
	notify := notifyClient.NewClient(
		cfg.NotifyGateway.URL,
		time.Duration(cfg.NotifyGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyGateway=%s timeout=%ds)",
		cfg.NotifyGateway.URL, cfg.NotifyGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		userRepository         *userRepo.Repository
		facultyRepository      *facultyRepo.Repository
		capacityRepository     *capacityRepo.Repository
		registrationRepository *registrationRepo.Repository
		cancellationRepository *cancellationRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		outboxRepository       *outboxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и воркере)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		userRepository = userRepo.NewRepository(wrappedDB)
		facultyRepository = facultyRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		registrationRepository = registrationRepo.NewRepository(wrappedDB)
		cancellationRepository = cancellationRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		userRepository = userRepo.NewRepository(db)
		facultyRepository = facultyRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		registrationRepository = registrationRepo.NewRepository(db)
		cancellationRepository = cancellationRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := systemClock{}

	// Инициализируем сервисы
	capacitySvc := capacityService.NewService(
		capacityRepository,
		facultyRepository,
		availabilityRepository,
		listingCache,
		clock,
		log,
	)
	facultySvc := facultyService.NewService(facultyRepository, log)
	registrationsSvc := registrationsService.NewService(
		registrationRepository,
		facultyRepository,
		availabilityRepository,
		cancellationRepository,
		userRepository,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		sheets,
		availabilityRepository,
		facultyRepository,
		userRepository,
		txMgr,
		clock,
		sheetsBackoffBase,
		log,
	)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		userRepository,
		facultyRepository,
		capacityRepository,
		registrationRepository,
		outboxRepository,
		listingCache,
		notify,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		userRepository,
		facultyRepository,
		registrationRepository,
		cancellationRepository,
		outboxRepository,
		listingCache,
		notify,
		txMgr,
		log,
	)
	resolveCancellationUseCase := resolveCancellationUC.NewUseCase(
		userRepository,
		facultyRepository,
		registrationRepository,
		cancellationRepository,
		outboxRepository,
		listingCache,
		notify,
		txMgr,
		log,
	)
	listOpenSlotsUseCase := listOpenSlotsUC.NewUseCase(
		capacityRepository,
		facultyRepository,
		listingCache,
		log,
	)

	// Инициализируем handlers
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	resolveCancellation := resolveCancellationHandler.NewHandler(resolveCancellationUseCase, log)
	getCurrentBooking := getCurrentBookingHandler.NewHandler(registrationsSvc, log)
	getOpenDates := getOpenDatesHandler.NewHandler(listOpenSlotsUseCase, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(listOpenSlotsUseCase, log)
	listFaculties := listFacultiesHandler.NewHandler(facultySvc, log)
	updateCapacity := updateCapacityHandler.NewHandler(capacitySvc, log)
	updateLockout := updateLockoutHandler.NewHandler(facultySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(facultySvc, log)
	getFacultyRegistrations := getFacultyRegistrationsHandler.NewHandler(registrationsSvc, log)
	syncAvailability := syncAvailabilityHandler.NewHandler(availabilitySvc, log)
	createSheets := createSheetsHandler.NewHandler(availabilitySvc, log)

	// Запускаем воркер зеркалирования записей
	var workerMetrics outboxrelay.Metrics = outboxrelay.NopMetrics{}
	if cfg.Metrics.Enabled {
		workerMetrics = metricsCollector
	}
	relay := outboxrelay.NewWorker(
		outboxRepository,
		facultyRepository,
		sheets,
		txMgr,
		workerMetrics,
		time.Duration(cfg.Worker.PollIntervalSeconds)*time.Second,
		sheetsBackoffBase,
		cfg.Worker.BatchSize,
		log,
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		relay.Run(workerCtx)
	}()

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список факультетов
	api.HandleFunc("/faculties", listFaculties.Handle).Methods(http.MethodGet)

	// Даты факультета со свободными местами
	api.HandleFunc("/faculties/{facultyId}/open-dates", getOpenDates.Handle).Methods(http.MethodGet)

	// Свободные интервалы на дату
	api.HandleFunc("/faculties/{facultyId}/open-slots", getOpenSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userRepository))

	// --- Записи кандидатов ---
	// Запись в слот
	protected.HandleFunc("/registrations", bookSlot.Handle).Methods(http.MethodPost)

	// Текущая запись кандидата
	protected.HandleFunc("/registrations/current", getCurrentBooking.Handle).Methods(http.MethodGet)

	// Отмена записи (прямая или через заявку)
	protected.HandleFunc("/registrations/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Решение админа по заявке на отмену
	protected.HandleFunc("/cancellations/{requestId}/resolve", resolveCancellation.Handle).Methods(http.MethodPost)

	// --- Управление факультетом (для админов) ---
	// Лимит мест слота
	protected.HandleFunc("/faculties/{facultyId}/capacity", updateCapacity.Handle).Methods(http.MethodPut)

	// Окно блокировки
	protected.HandleFunc("/faculties/{facultyId}/lockout", updateLockout.Handle).Methods(http.MethodPut)

	// Режим отмены записей
	protected.HandleFunc("/faculties/{facultyId}/cancellation-policy", updatePolicy.Handle).Methods(http.MethodPut)

	// Активные записи факультета
	protected.HandleFunc("/faculties/{facultyId}/registrations", getFacultyRegistrations.Handle).Methods(http.MethodGet)

	// --- Доступность собеседующих ---
	// Синхронизация отметок из таблицы
	protected.HandleFunc("/availability/sync", syncAvailability.Handle).Methods(http.MethodPost)

	// Создание листов собеседующих
	protected.HandleFunc("/availability/sheets", createSheets.Handle).Methods(http.MethodPost)

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

	// Останавливаем воркер
	stopWorker()
	<-workerDone

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
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
