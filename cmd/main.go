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

	cancelAppointmentHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/create_appointment"
	createWindowHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/create_calendar_window"
	deleteWindowHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/delete_calendar_window"
	getAppointmentHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/get_calendar"
	getClientAppointmentsHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/get_client_appointments"
	getStaffAppointmentsHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/get_staff_appointments"
	transitionAppointmentHandler "github.com/evelone226/salon-appointment-service/internal/api/handlers/transition_appointment"
	"github.com/evelone226/salon-appointment-service/internal/api/middleware"
	"github.com/evelone226/salon-appointment-service/internal/config"
	"github.com/evelone226/salon-appointment-service/internal/domain"
	appointmentRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/appointment"
	calendarRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/calendar"
	statusRepo "github.com/evelone226/salon-appointment-service/internal/infra/storage/status"
	catalogServiceClient "github.com/evelone226/salon-appointment-service/internal/integrations/catalogservice"
	userServiceClient "github.com/evelone226/salon-appointment-service/internal/integrations/userservice"
	appointmentsService "github.com/evelone226/salon-appointment-service/internal/service/appointments"
	calendarService "github.com/evelone226/salon-appointment-service/internal/service/calendar"
	cancelAppointmentUC "github.com/evelone226/salon-appointment-service/internal/usecase/cancel_appointment"
	confirmAppointmentUC "github.com/evelone226/salon-appointment-service/internal/usecase/confirm_appointment"
	createAppointmentUC "github.com/evelone226/salon-appointment-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/evelone226/salon-appointment-service/internal/usecase/get_available_slots"
	"github.com/evelone226/salon-appointment-service/pkg/dbmetrics"
	"github.com/evelone226/salon-appointment-service/pkg/logger"
	"github.com/evelone226/salon-appointment-service/pkg/metrics"
	"github.com/evelone226/salon-appointment-service/pkg/simpletxmanager"
	"github.com/evelone226/salon-appointment-service/pkg/txmanager"
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

	log.Info("Starting salon-appointment-service...")
	log.Info("Configuration loaded from config.toml")

	policy := cfg.Policy.ToDomain()
	log.Info("Booking policy: notice=%s, horizon=%d months, slot step=%d min",
		policy.CancellationNotice, policy.BookingHorizonMonths, policy.SlotStepMinutes)

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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		statusRepository      *statusRepo.Repository
		calendarRepository    *calendarRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		statusRepository = statusRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		statusRepository = statusRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Проверяем справочник статусов: без него сервис бесполезен
	if err := checkStatusCatalog(statusRepository); err != nil {
		log.Fatal("Status catalog check failed: %v", err)
	}
	log.Info("Status catalog verified")

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		statusRepository,
		userClient,
		log,
	)
	calendarSvc := calendarService.NewService(
		calendarRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		statusRepository,
		calendarRepository,
		catalogClient,
		userClient,
		txMgr,
		policy,
		log,
	)
	confirmAppointmentUseCase := confirmAppointmentUC.NewUseCase(
		appointmentRepository,
		statusRepository,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		statusRepository,
		userClient,
		policy,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		catalogClient,
		policy,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(confirmAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentSvc, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(appointmentSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	createWindow := createWindowHandler.NewHandler(calendarSvc, log)
	deleteWindow := deleteWindowHandler.NewHandler(calendarSvc, log)

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

	// Подбор свободных слотов
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание работы салона
	api.HandleFunc("/calendar/windows", getCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подтверждение записи
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// Терминальные переходы (для администраторов)
	protected.HandleFunc("/appointments/{appointmentId}/complete", transitionAppointment.HandleComplete).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/no-show", transitionAppointment.HandleNoShow).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Расписание мастера
	protected.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Календарь (для администраторов) ---
	protected.HandleFunc("/calendar/windows", createWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendar/windows/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)

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

// checkStatusCatalog проверяет, что в справочнике есть все статусы,
// известные домену. Отсутствующий статус ломает создание и переходы записей,
// поэтому падаем на старте, а не на первом запросе
func checkStatusCatalog(repo *statusRepo.Repository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	statuses, err := repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load status catalog: %w", err)
	}

	known := make(map[domain.StatusName]bool, len(statuses))
	for _, status := range statuses {
		known[status.Name] = true
	}

	for _, name := range domain.AllStatuses {
		if !known[name] {
			return fmt.Errorf("status %q is missing from the catalog", name)
		}
	}

	return nil
}
