package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-scheduling/config"
	deliveryHttp "go-clinic-scheduling/internal/delivery/http"
	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/internal/infrastructure/cache"
	"go-clinic-scheduling/internal/infrastructure/database"
	"go-clinic-scheduling/internal/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	JWT         *jwt.JWTService
	Denylist    *service.TokenDenylist
	Slots       usecase.SlotUsecase
	Server      *http.Server
}

// Load reads the configuration and sets up logging. Nothing is connected yet.
func Load() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{
		Config: cfg,
		Log:    setupLogger(cfg.App.LogLevel),
		JWT:    jwt.NewJWTService(cfg.JWT),
	}
	app.Log.Info("Configuration loaded successfully")

	return app, nil
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app, err := Load()
	if err != nil {
		return nil, err
	}

	if err := app.ConnectDatabase(); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.Migrate(); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.ConnectRedis(); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.Wire(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (app *App) ConnectDatabase() error {
	db, err := database.NewPostgresConnection(app.Config.DB, app.Config.App.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")
	return nil
}

func (app *App) Migrate() error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return database.RunMigrations(sqlDB, app.Log)
}

func (app *App) Rollback(steps int) error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return database.RollbackMigrations(sqlDB, steps, app.Log)
}

func (app *App) ConnectRedis() error {
	redisClient, err := cache.NewRedisClient(app.Config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Denylist = service.NewTokenDenylist(redisClient, app.Config.JWT.AccessExpiry)
	app.Log.Info("Redis connected successfully")
	return nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// Wire builds repositories, services, usecases and the HTTP server.
// ConnectDatabase must have run. Without Redis the public surface is not
// rate limited and revoked tokens are not checked.
func (app *App) Wire() error {
	cfg := app.Config
	log := app.Log
	db := app.DB

	// Initialize validator
	customValidator := validator.NewValidator()

	periods, err := scheduling.NewPeriods(cfg.Scheduling.MorningEnd, cfg.Scheduling.EveningEnd)
	if err != nil {
		return fmt.Errorf("invalid period boundaries: %w", err)
	}

	// Initialize repositories
	tx := repository.NewTransactor(db)
	hospitalRepo := repository.NewHospitalRepository()
	doctorRepo := repository.NewDoctorProfileRepository()
	patientRepo := repository.NewPatientProfileRepository()
	scheduleRepo := repository.NewWeeklyScheduleRepository()
	timeOffRepo := repository.NewTimeOffRepository()
	slotRepo := repository.NewSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	queueRepo := repository.NewQueueEntryRepository()
	checkinRepo := repository.NewDoctorCheckinRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	calendar, err := service.NewCalendarService(tx, log, hospitalRepo, cfg.App.DefaultTimezone, nil)
	if err != nil {
		return err
	}
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	slotUsecase := usecase.NewSlotUsecase(tx, log, periods, calendar, auditService,
		doctorRepo, scheduleRepo, timeOffRepo, slotRepo, appointmentRepo, queueRepo)
	scheduleUsecase := usecase.NewScheduleUsecase(tx, log, auditService, doctorRepo, scheduleRepo, timeOffRepo)
	regenerationUsecase := usecase.NewRegenerationUsecase(tx, log, cfg.Scheduling.RegenerationMonths, calendar, auditService,
		slotUsecase, doctorRepo, slotRepo, appointmentRepo, queueRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(tx, log, calendar, auditService,
		patientRepo, slotRepo, appointmentRepo, queueRepo)
	queueUsecase := usecase.NewQueueUsecase(tx, log, cfg.Scheduling.MinAverageSamples, calendar, auditService,
		doctorRepo, patientRepo, slotRepo, appointmentRepo, queueRepo, checkinRepo)
	checkinUsecase := usecase.NewDoctorCheckinUsecase(tx, log, calendar, doctorRepo, checkinRepo)
	publicUsecase := usecase.NewPublicUsecase(tx, log, cfg.Scheduling.MinAverageSamples, calendar, auditService,
		doctorRepo, slotRepo, appointmentRepo, queueRepo, checkinRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(tx, log, auditLogRepo)
	app.Slots = slotUsecase

	// Initialize handlers
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)
	slotHandler := handler.NewSlotHandler(slotUsecase, customValidator)
	regenerationHandler := handler.NewRegenerationHandler(regenerationUsecase, customValidator, log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	queueHandler := handler.NewQueueHandler(queueUsecase, customValidator)
	checkinHandler := handler.NewDoctorCheckinHandler(checkinUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	publicHandler := handler.NewPublicHandler(publicUsecase, customValidator)

	// Initialize middleware
	var denylist middleware.RevocationChecker
	var limiter middleware.Limiter
	if app.RedisClient != nil {
		denylist = app.Denylist
		limiter = service.NewRateLimiter(app.RedisClient, cfg.Public.RateLimit, cfg.Public.RateWindow)
	}
	authMiddleware := middleware.NewAuthMiddleware(app.JWT, denylist, log)
	publicRateLimit := middleware.NewRateLimitMiddleware(limiter, "public", log)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)

	// Initialize router
	router := deliveryHttp.NewRouter(
		scheduleHandler, slotHandler, regenerationHandler, appointmentHandler,
		queueHandler, checkinHandler, auditLogHandler, publicHandler,
		authMiddleware, publicRateLimit, loggingMiddleware, corsMiddleware,
	)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
