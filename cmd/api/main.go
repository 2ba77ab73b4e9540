package main

import (
	"context"
	"database/sql"
	"flag"
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

	createBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_catalog"
	getCustomerBookingsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_customer_bookings"
	getQueueHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_queue"
	listBookingsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_bookings"
	metaWebhookHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/meta_webhook"
	twilioWebhookHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/twilio_webhook"
	updateBookingStatusHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/config"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/dedup"
	"github.com/m04kA/SMC-BarberService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/bookingfile"
	"github.com/m04kA/SMC-BarberService/internal/integrations/dispatch"
	"github.com/m04kA/SMC-BarberService/internal/integrations/metawa"
	"github.com/m04kA/SMC-BarberService/internal/integrations/twilio"
	bookingsService "github.com/m04kA/SMC-BarberService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-BarberService/internal/service/catalog"
	"github.com/m04kA/SMC-BarberService/internal/service/matcher"
	"github.com/m04kA/SMC-BarberService/internal/service/parser"
	"github.com/m04kA/SMC-BarberService/internal/service/queue"
	"github.com/m04kA/SMC-BarberService/internal/service/reservation"
	createBookingUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
	getQueueUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_queue"
	intakeMessageUC "github.com/m04kA/SMC-BarberService/internal/usecase/intake_message"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/keylock"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

// BookingStore общий контракт Postgres и файлового хранилища
type BookingStore interface {
	Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Load(ctx context.Context) ([]*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, expected, status domain.BookingStatus) (*domain.Booking, error)
}

// TxManager транзакции для Postgres, для файла - no-op
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker критическая секция date:barber
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// DedupStore дедупликация входящих сообщений
type DedupStore interface {
	MarkProcessed(ctx context.Context, provider, messageID string) (bool, error)
	Forget(ctx context.Context, provider, messageID string) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-BarberService...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Invalid shop timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований
	var (
		store BookingStore
		txMgr TxManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// С nil metricsCollector обёртка не собирает статистику
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		store = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)

	case config.StorageDriverFile:
		store = bookingfile.NewRepository(cfg.Storage.Path)
		txMgr = txmanager.NewNoop()
		log.Info("Using file storage at %s", cfg.Storage.Path)
	}

	// Redis: дедупликация и распределённые блокировки
	var (
		locker      Locker
		dedupStore  DedupStore
		dedupTTL    = time.Duration(cfg.Webhook.DedupTTL) * time.Second
		redisClient *redis.Client
	)

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = lock.NewRedisLocker(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second)
		dedupStore = dedup.NewRedisStore(redisClient, dedupTTL)
		log.Info("Redis connected (addr=%s): distributed locks and dedup enabled", cfg.Redis.Addr)
	} else {
		locker = keylock.New()
		dedupStore = dedup.NewMemoryStore(dedupTTL)
		log.Info("Redis disabled: in-process locks and dedup")
	}

	// Каталог и барберы загружаются один раз при старте
	catalog := cfg.Catalog.ToDomainCatalog()
	roster := cfg.Catalog.ToDomainRoster()
	log.Info("Catalog loaded: %d services, %d barbers", len(catalog), len(roster))

	// Инициализируем интеграционных клиентов
	var senders []dispatch.Sender
	if cfg.Twilio.Enabled {
		senders = append(senders, twilio.NewClient(twilio.Config{
			BaseURL:    cfg.Twilio.BaseURL,
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			From:       cfg.Twilio.From,
			Timeout:    time.Duration(cfg.Twilio.Timeout) * time.Second,
		}, log))
		log.Info("Twilio sender enabled (from=%s)", cfg.Twilio.From)
	}
	if cfg.Meta.Enabled {
		senders = append(senders, metawa.NewClient(metawa.Config{
			GraphAPIBase:  cfg.Meta.GraphAPIBase,
			AccessToken:   cfg.Meta.AccessToken,
			PhoneNumberID: cfg.Meta.PhoneNumberID,
			Timeout:       time.Duration(cfg.Meta.Timeout) * time.Second,
		}, log))
		log.Info("Meta WhatsApp sender enabled (phone_number_id=%s)", cfg.Meta.PhoneNumberID)
	}
	dispatcher := dispatch.New(
		cfg.Messaging.DefaultProvider,
		time.Duration(cfg.Messaging.SendTimeout)*time.Second,
		metricsCollector,
		log,
		senders...,
	)

	// Инициализируем сервисы
	serviceMatcher := matcher.NewServiceMatcher(catalog)
	barberMatcher := matcher.NewBarberMatcher(roster)
	assigner := queue.NewAssigner(store, metricsCollector, log)
	reservationSvc := reservation.NewService(store, assigner, locker, txMgr, log)
	bookingSvc := bookingsService.NewService(store, txMgr, log)
	catalogSvc := catalogService.NewService(catalog, roster, log)

	// Инициализируем use cases
	intakeUseCase := intakeMessageUC.NewUseCase(
		store,
		parser.NewExtractor(catalog),
		serviceMatcher,
		barberMatcher,
		parser.NewDateTimeResolver(location),
		reservationSvc,
		bookingSvc,
		dedupStore,
		dispatcher,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		serviceMatcher,
		barberMatcher,
		reservationSvc,
		dispatcher,
		location,
		log,
	)

	getQueueUseCase := getQueueUC.NewUseCase(store, location, log)

	// Инициализируем handlers
	twilioWebhook := twilioWebhookHandler.NewHandler(intakeUseCase, twilioWebhookHandler.Config{
		AuthToken: cfg.Twilio.AuthToken,
		PublicURL: cfg.Webhook.TwilioPublicURL,
	}, log)
	metaWebhook := metaWebhookHandler.NewHandler(intakeUseCase, metaWebhookHandler.Config{
		AppSecret:   cfg.Meta.AppSecret,
		VerifyToken: cfg.Meta.VerifyToken,
	}, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getQueue := getQueueHandler.NewHandler(getQueueUseCase, log)
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// WEBHOOKS (подпись провайдера, rate limit по IP)
	// ============================================================

	webhooks := r.PathPrefix("/webhooks").Subrouter()
	webhooks.Use(middleware.NewRateLimiter(cfg.Webhook.RateLimitRPS, cfg.Webhook.RateLimitBurst).Middleware())

	webhooks.HandleFunc("/twilio/whatsapp", twilioWebhook.Handle).Methods(http.MethodPost)
	webhooks.HandleFunc("/meta/whatsapp", metaWebhook.Verify).Methods(http.MethodGet)
	webhooks.HandleFunc("/meta/whatsapp", metaWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// API
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История клиента
	api.HandleFunc("/customers/{phone}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Табло очереди
	api.HandleFunc("/queue", getQueue.Handle).Methods(http.MethodGet)

	// --- Каталог ---
	api.HandleFunc("/services", getCatalog.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getCatalog.GetService).Methods(http.MethodGet)
	api.HandleFunc("/barbers", getCatalog.ListBarbers).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}", getCatalog.GetBarber).Methods(http.MethodGet)

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
