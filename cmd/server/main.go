package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	billingapp "github.com/kejaplus/backend/internal/application/billing"
	documentapp "github.com/kejaplus/backend/internal/application/document"
	financeapp "github.com/kejaplus/backend/internal/application/finance"
	maintenanceapp "github.com/kejaplus/backend/internal/application/maintenance"
	propertyapp "github.com/kejaplus/backend/internal/application/property"
	reportapp "github.com/kejaplus/backend/internal/application/report"
	tenancyapp "github.com/kejaplus/backend/internal/application/tenancy"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/infrastructure/cache"
	"github.com/kejaplus/backend/internal/infrastructure/config"
	"github.com/kejaplus/backend/internal/infrastructure/event"
	"github.com/kejaplus/backend/internal/infrastructure/logger"
	"github.com/kejaplus/backend/internal/infrastructure/notification"
	"github.com/kejaplus/backend/internal/infrastructure/persistence"
	"github.com/kejaplus/backend/internal/infrastructure/printing"
	"github.com/kejaplus/backend/internal/infrastructure/scheduler"
	"github.com/kejaplus/backend/internal/infrastructure/telemetry"
	"github.com/kejaplus/backend/internal/interfaces/http/handler"
	"github.com/kejaplus/backend/internal/interfaces/http/middleware"
	"github.com/kejaplus/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// Initialize telemetry providers first so the logger can bridge to OTEL
	var (
		tracerProvider *telemetry.TracerProvider
		meterProvider  *telemetry.MeterProvider
		logsProvider   *telemetry.LoggerProvider
	)

	bootstrapLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    "kejaplus-server",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	log := bootstrapLog
	if cfg.Telemetry.Enabled {
		tracerProvider, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, bootstrapLog)
		if err != nil {
			bootstrapLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}

		meterProvider, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, bootstrapLog)
		if err != nil {
			bootstrapLog.Fatal("Failed to initialize meter provider", zap.Error(err))
		}

		logsProvider, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, bootstrapLog)
		if err != nil {
			bootstrapLog.Fatal("Failed to initialize logger provider", zap.Error(err))
		}

		// Replace the plain logger with one that also exports to the collector
		log, err = telemetry.CreateBridgedLoggerFromConfig(&telemetry.BaseLoggerConfig{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			Output:     cfg.Log.Output,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		}, logsProvider, cfg.Telemetry.ServiceName)
		if err != nil {
			bootstrapLog.Fatal("Failed to bridge logger to OTEL", zap.Error(err))
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Keja Plus backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register query tracing and pool metrics against GORM
	var businessMetrics *telemetry.BusinessMetrics
	if cfg.Telemetry.Enabled {
		tracingCfg := telemetry.DefaultDBTracingConfig()
		tracingCfg.Enabled = cfg.Telemetry.DBTraceEnabled
		dbTracing := telemetry.NewDBTracingPlugin(tracingCfg, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}

		meter := meterProvider.Meter("kejaplus.db")
		dbMetrics, err := telemetry.NewDBMetrics(meter, telemetry.DefaultDBMetricsConfig(), log)
		if err != nil {
			log.Warn("Failed to create database metrics", zap.Error(err))
		} else if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Warn("Failed to register database metrics plugin", zap.Error(err))
		}

		businessMetrics, err = telemetry.NewBusinessMetrics(meterProvider.Meter("kejaplus.business"), log)
		if err != nil {
			log.Warn("Failed to create business metrics", zap.Error(err))
		}
	}

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	rentPaymentRepo := persistence.NewGormRentPaymentRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	reminderRepo := persistence.NewGormReminderRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRequestRepository(db.DB)

	// Tariff applied when periods are billed
	tariff, err := billing.NewTariff(
		decimal.NewFromFloat(cfg.Billing.WaterUnitRate),
		decimal.NewFromFloat(cfg.Billing.GarbageFee),
	)
	if err != nil {
		log.Fatal("Invalid billing tariff", zap.Error(err))
	}

	// PDF rendering and storage
	pdfRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Documents.RenderTimeout,
		ExecPath:       cfg.Documents.ChromePath,
		Headless:       true,
		DisableGPU:     true,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	pdfStorage, err := printing.NewFileSystemStorage(&printing.FileSystemStorageConfig{
		BasePath: cfg.Documents.StoragePath,
		BaseURL:  cfg.Documents.BaseURL,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("Failed to initialize document storage", zap.Error(err))
	}

	templateEngine, err := printing.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load document templates", zap.Error(err))
	}

	// Notification channels for reminders
	notifiers := map[document.ReminderChannel]notification.Notifier{
		document.ReminderChannelEmail: notification.NewSMTPNotifier(notification.SMTPConfig{
			Host:        cfg.Reminders.Email.Host,
			Port:        cfg.Reminders.Email.Port,
			Username:    cfg.Reminders.Email.Username,
			Password:    cfg.Reminders.Email.Password,
			FromAddress: cfg.Reminders.Email.FromAddress,
			FromName:    cfg.Reminders.Email.FromName,
		}, log),
		document.ReminderChannelSMS: notification.NewSMSNotifier(notification.SMSConfig{
			GatewayURL: cfg.Reminders.SMS.GatewayURL,
			APIKey:     cfg.Reminders.SMS.APIKey,
			SenderID:   cfg.Reminders.SMS.SenderID,
			Timeout:    cfg.Reminders.SMS.Timeout,
		}, log),
	}

	// Event bus with report cache invalidation
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Report cache (Redis with in-memory fallback)
	cacheFactory := cache.NewReportCacheFactory(cfg.Redis, cache.WithLogger(log))
	reportCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize report cache", zap.Error(err))
	}

	// Application services
	propertyService := propertyapp.NewPropertyService(propertyRepo, tenantRepo,
		propertyapp.WithLogger(log),
	)
	tenantService := tenancyapp.NewTenantService(tenantRepo, propertyRepo,
		tenancyapp.WithLogger(log),
	)
	billingService := billingapp.NewBillingService(rentPaymentRepo, tenantRepo, propertyRepo, reminderRepo,
		billingapp.WithLogger(log),
		billingapp.WithTariff(tariff),
		billingapp.WithEventPublisher(eventBus),
	)
	documentService := documentapp.NewDocumentService(rentPaymentRepo, invoiceRepo, receiptRepo,
		templateEngine, pdfRenderer, pdfStorage,
		documentapp.WithLogger(log),
		documentapp.WithTariff(tariff),
		documentapp.WithDispatch(tenantRepo, notifiers),
	)
	reminderService := documentapp.NewReminderService(rentPaymentRepo, reminderRepo, tenantRepo, notifiers,
		documentapp.WithReminderLogger(log),
		documentapp.WithReminderTariff(tariff),
		documentapp.WithBulkWorkers(cfg.Reminders.BulkWorkers),
	)
	expenseService := financeapp.NewExpenseService(expenseRepo, propertyRepo,
		financeapp.WithLogger(log),
		financeapp.WithEventPublisher(eventBus),
	)
	maintenanceService := maintenanceapp.NewMaintenanceService(maintenanceRepo, propertyRepo, tenantRepo,
		maintenanceapp.WithLogger(log),
	)
	reportService := reportapp.NewAggregationService(
		rentPaymentRepo, invoiceRepo, receiptRepo, reminderRepo,
		expenseRepo, propertyRepo, tenantRepo,
		reportapp.WithLogger(log),
		reportapp.WithTariff(tariff),
		reportapp.WithCache(reportCache, cfg.Redis.ReportTTL),
	)

	// Drop cached reports when payments or expenses land
	eventBus.Subscribe(event.NewReportInvalidationHandler(reportService, log))

	// Scheduler for reminder sweeps and document cleanup
	var cronTrigger *scheduler.CronTrigger
	if cfg.Scheduler.Enabled {
		executorCfg := scheduler.DefaultExecutorConfig()
		executorCfg.RetentionDays = cfg.Documents.RetentionDays
		executor := scheduler.NewExecutor(executorCfg, reminderService, pdfStorage, log)

		jobScheduler := scheduler.NewScheduler(scheduler.ConfigFromApp(cfg.Scheduler), executor, log)
		if err := jobScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		cronTrigger = scheduler.NewCronTrigger(jobScheduler, log)
		if err := cronTrigger.AddSchedule(cfg.Scheduler.ReminderCronSchedule, scheduler.JobTypeReminderSweep); err != nil {
			log.Fatal("Invalid reminder cron schedule", zap.Error(err))
		}
		if err := cronTrigger.AddSchedule(cfg.Scheduler.CleanupCronSchedule, scheduler.JobTypeDocumentCleanup); err != nil {
			log.Fatal("Invalid cleanup cron schedule", zap.Error(err))
		}
		if err := cronTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping cron trigger", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.String("reminder_schedule", cfg.Scheduler.ReminderCronSchedule),
			zap.String("cleanup_schedule", cfg.Scheduler.CleanupCronSchedule),
		)
	}

	// HTTP handlers
	propertyHandler := handler.NewPropertyHandler(propertyService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	rentPaymentHandler := handler.NewRentPaymentHandler(billingService,
		handler.WithBusinessMetrics(businessMetrics),
	)
	documentHandler := handler.NewDocumentHandler(documentService,
		handler.WithDocumentMetrics(businessMetrics),
		handler.WithFileStore(pdfStorage),
	)
	reminderHandler := handler.NewReminderHandler(reminderService,
		handler.WithReminderMetrics(businessMetrics),
	)
	reportHandler := handler.NewReportHandler(reportService)
	expenseHandler := handler.NewExpenseHandler(expenseService,
		handler.WithExpenseMetrics(businessMetrics),
	)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)

	systemOpts := []handler.SystemHandlerOption{handler.WithDBPinger(dbPinger{db})}
	if cronTrigger != nil {
		systemOpts = append(systemOpts, handler.WithJobTrigger(cronTrigger))
	}
	systemHandler := handler.NewSystemHandler(systemOpts...)

	// Gin engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/api/v1/system/ping", "/api/v1/system/health"))
	engine.Use(middleware.Secure())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(propertyHandler).
		Register(tenantHandler).
		Register(rentPaymentHandler).
		Register(documentHandler).
		Register(reminderHandler).
		Register(reportHandler).
		Register(expenseHandler).
		Register(maintenanceHandler).
		Register(systemHandler)
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}
	if meterProvider != nil {
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}
	if logsProvider != nil {
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// dbPinger adapts the persistence database to the health check interface.
type dbPinger struct {
	db *persistence.Database
}

func (p dbPinger) Ping(_ context.Context) error {
	return p.db.Ping()
}
