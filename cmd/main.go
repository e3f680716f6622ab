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
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	initiateCheckoutHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/initiate_checkout"
	listDoctorsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_doctors"
	paymentCancelHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/payment_cancel"
	paymentSuccessHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/payment_success"
	previewPriceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/preview_price"
	recommendationSuccessHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/recommendation_success"
	registerWalkInHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/register_walkin"
	scheduleBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/schedule_booking"
	subscribeRecommendationHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/subscribe_recommendation"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/paymentgateway"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingsession"
	doctorsService "github.com/m04kA/SMC-AppointmentService/internal/service/doctors"
	principalsService "github.com/m04kA/SMC-AppointmentService/internal/service/principals"
	confirmRecommendationUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_recommendation"
	finalizeBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_booking"
	initiateCheckoutUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/initiate_checkout"
	previewPriceUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_price"
	registerWalkInUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/register_walkin"
	scheduleBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/schedule_booking"
	subscribeRecommendationUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/subscribe_recommendation"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// eventPublisher паблишер событий финализации с закрытием канала
type eventPublisher interface {
	finalizeBookingUC.EventPublisher
	Close() error
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// Методы *metrics.Metrics безопасны для nil, поэтому nil передаётся в use cases как есть
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Подключаемся к Redis (хранилище незавершённых бронирований)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Публикация событий финализации
	var publisher eventPublisher = notifier.Nop{}
	if cfg.RabbitMQ.Enabled {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer conn.Close()

		amqpPublisher, err := notifier.NewPublisher(conn, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to initialize event publisher: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Event publisher initialized (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		log.Info("RabbitMQ disabled, finalization events are not published")
	}
	defer publisher.Close()

	// Платёжный шлюз
	gatewayClient := paymentgateway.NewClient(
		paymentgateway.Config{
			BaseURL:        cfg.Payment.BaseURL,
			SecretKey:      cfg.Payment.SecretKey,
			Currency:       cfg.Payment.Currency,
			MinAmountMinor: cfg.Payment.MinAmountMinor,
			Timeout:        time.Duration(cfg.Payment.Timeout) * time.Second,
		},
		paymentgateway.BreakerConfig{
			MaxRequests:         cfg.Breaker.MaxRequests,
			Interval:            time.Duration(cfg.Breaker.Interval) * time.Second,
			Timeout:             time.Duration(cfg.Breaker.Timeout) * time.Second,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		},
		metricsCollector,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, currency=%s, timeout=%ds)",
		cfg.Payment.BaseURL, cfg.Payment.Currency, cfg.Payment.Timeout)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	patientRepository := patientRepo.NewRepository(wrappedDB)
	doctorRepository := doctorRepo.NewRepository(wrappedDB)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	sessionStore := session.NewStore(redisClient, cfg.Session.PendingTTL())
	sessionSvc := bookingsession.NewService(sessionStore, log)
	recommendationStore := session.NewRecommendationStore(redisClient, cfg.Session.PendingTTL())
	principalSvc := principalsService.NewService(patientRepository, doctorRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txManager, log)
	doctorSvc := doctorsService.NewService(doctorRepository, log)

	// Инициализируем use cases
	scheduleBookingUseCase := scheduleBookingUC.NewUseCase(doctorRepository, sessionSvc, log)
	previewPriceUseCase := previewPriceUC.NewUseCase(doctorRepository, patientRepository, sessionSvc, log)
	initiateCheckoutUseCase := initiateCheckoutUC.NewUseCase(
		doctorRepository,
		sessionSvc,
		gatewayClient,
		initiateCheckoutUC.URLs{
			SuccessURL: cfg.Payment.SuccessURL,
			CancelURL:  cfg.Payment.CancelURL,
		},
		metricsCollector,
		log,
	)
	finalizeBookingUseCase := finalizeBookingUC.NewUseCase(
		appointmentRepository,
		patientRepository,
		doctorRepository,
		sessionSvc,
		publisher,
		txManager,
		metricsCollector,
		log,
	)
	registerWalkInUseCase := registerWalkInUC.NewUseCase(appointmentRepository, doctorRepository, txManager, log)
	subscribeRecommendationUseCase := subscribeRecommendationUC.NewUseCase(
		doctorRepository,
		recommendationStore,
		gatewayClient,
		subscribeRecommendationUC.Config{
			AmountMinorUnits: cfg.Payment.RecommendationAmountMinor,
			SuccessURL:       cfg.Payment.RecommendationSuccessURL,
			CancelURL:        cfg.Payment.CancelURL,
		},
		metricsCollector,
		log,
	)
	confirmRecommendationUseCase := confirmRecommendationUC.NewUseCase(
		doctorRepository,
		recommendationStore,
		txManager,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	scheduleBooking := scheduleBookingHandler.NewHandler(scheduleBookingUseCase, log)
	previewPrice := previewPriceHandler.NewHandler(previewPriceUseCase, log)
	initiateCheckout := initiateCheckoutHandler.NewHandler(initiateCheckoutUseCase, log)
	paymentSuccess := paymentSuccessHandler.NewHandler(finalizeBookingUseCase, log)
	paymentCancel := paymentCancelHandler.NewHandler(log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	registerWalkIn := registerWalkInHandler.NewHandler(registerWalkInUseCase, log)
	listDoctors := listDoctorsHandler.NewHandler(doctorSvc, log)
	subscribeRecommendation := subscribeRecommendationHandler.NewHandler(subscribeRecommendationUseCase, log)
	recommendationSuccess := recommendationSuccessHandler.NewHandler(confirmRecommendationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.Principal(principalSvc, log))

	// --- Записи на приём ---
	protected.HandleFunc("/appointments/walk-in", registerWalkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог врачей ---
	protected.HandleFunc("/doctors", listDoctors.Handle).Methods(http.MethodGet)

	// --- Сценарий записи (привязан к cookie сессии) ---
	booking := protected.PathPrefix("").Subrouter()
	booking.Use(middleware.Session(middleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	}))

	booking.HandleFunc("/doctors/{doctorId}/schedule", scheduleBooking.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/booking/preview", previewPrice.Handle).Methods(http.MethodGet, http.MethodPost)
	booking.HandleFunc("/booking/checkout", initiateCheckout.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/booking/success", paymentSuccess.Handle).Methods(http.MethodGet)
	booking.HandleFunc("/booking/cancel", paymentCancel.Handle).Methods(http.MethodGet)

	// --- Подписка врача на рекомендацию ---
	booking.HandleFunc("/doctors/me/recommendation/checkout", subscribeRecommendation.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/doctors/me/recommendation/success", recommendationSuccess.Handle).Methods(http.MethodGet)

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
