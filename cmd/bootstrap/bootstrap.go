package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-scheduling/config"
	deliveryHttp "go-hospital-scheduling/internal/delivery/http"
	"go-hospital-scheduling/internal/delivery/http/handler"
	"go-hospital-scheduling/internal/delivery/http/middleware"
	"go-hospital-scheduling/internal/infrastructure/cache"
	"go-hospital-scheduling/internal/infrastructure/calendar"
	"go-hospital-scheduling/internal/infrastructure/database"
	"go-hospital-scheduling/internal/repository"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/jwt"
	"go-hospital-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	doctorRepo := repository.NewDoctorProfileRepository()
	workingDayRepo := repository.NewWorkingDayRepository()
	exceptionRepo := repository.NewScheduleExceptionRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	conflictRepo := repository.NewScheduleConflictRepository()
	templateRepo := repository.NewScheduleTemplateRepository()
	integrationRepo := repository.NewCalendarIntegrationRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize domain services
	slotGenerator := service.NewSlotGenerator()
	availabilityEngine := service.NewAvailabilityEngine(slotGenerator)
	conflictDetector := service.NewConflictDetector()
	templateEngine := service.NewTemplateEngine()
	auditService := service.NewAuditService(log, auditRepo)
	availabilityCache := service.NewRedisAvailabilityCache(redisClient, log, cfg.Scheduling.AvailabilityCacheTTL)
	calendarProvider := calendar.NewGatewayProvider(cfg.Scheduling, log)

	// Initialize usecases
	conflictUsecase := usecase.NewConflictUsecase(db, log, doctorRepo, workingDayRepo, exceptionRepo,
		appointmentRepo, conflictRepo, availabilityEngine, conflictDetector, auditService, availabilityCache)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, doctorRepo, workingDayRepo, exceptionRepo,
		appointmentRepo, availabilityEngine, conflictDetector, availabilityCache)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, doctorRepo, workingDayRepo, auditService, availabilityCache)
	templateUsecase := usecase.NewTemplateUsecase(db, log, doctorRepo, templateRepo, workingDayRepo,
		templateEngine, conflictUsecase, auditService, availabilityCache)
	exceptionUsecase := usecase.NewExceptionUsecase(db, log, doctorRepo, exceptionRepo,
		conflictUsecase, auditService, availabilityCache)
	calendarSyncUsecase := usecase.NewCalendarSyncUsecase(db, log, cfg.Scheduling.CalendarSyncTimeout,
		doctorRepo, integrationRepo, exceptionRepo, appointmentRepo, calendarProvider,
		conflictUsecase, auditService, availabilityCache)

	// Initialize handlers
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)
	templateHandler := handler.NewTemplateHandler(templateUsecase, customValidator)
	exceptionHandler := handler.NewExceptionHandler(exceptionUsecase, customValidator)
	conflictHandler := handler.NewConflictHandler(conflictUsecase, customValidator)
	calendarSyncHandler := handler.NewCalendarSyncHandler(calendarSyncUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(availabilityHandler, scheduleHandler, templateHandler,
		exceptionHandler, conflictHandler, calendarSyncHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
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
