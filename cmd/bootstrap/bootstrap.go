package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-admin/config"
	deliveryHttp "content-admin/internal/delivery/http"
	"content-admin/internal/delivery/http/handler"
	"content-admin/internal/delivery/http/middleware"
	"content-admin/internal/infrastructure/cache"
	"content-admin/internal/infrastructure/database"
	"content-admin/internal/infrastructure/messaging"
	"content-admin/internal/infrastructure/metrics"
	"content-admin/internal/infrastructure/storage"
	"content-admin/internal/repository"
	"content-admin/internal/service"
	"content-admin/internal/usecase"
	"content-admin/pkg/jwt"
	"content-admin/pkg/password"
	"content-admin/pkg/phone"
	"content-admin/pkg/validator"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	NATS        *nats.Conn
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	// Apply migrations before gorm opens its pool
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(database.DSN(cfg.DB)); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
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

	// Initialize NATS (optional)
	nc, err := messaging.NewNATSConnection(cfg.NATS, logrus.StandardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	app.NATS = nc

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient, nc, store)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NewPasswordPolicy builds the configured validator chain. The common list file is optional.
func NewPasswordPolicy(cfg config.PasswordConfig) (*password.Policy, error) {
	opts := password.Options{MinLength: cfg.MinLength}
	if cfg.CommonListFile != "" {
		f, err := os.Open(cfg.CommonListFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open common password list: %w", err)
		}
		defer f.Close()
		opts.CommonList = f
	}
	return password.NewPolicyFromNames(cfg.Validators, opts)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, nc *nats.Conn, store storage.Storage) (*http.Server, error) {
	// Initialize logger
	log := logrus.StandardLogger()

	m := metrics.New()
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	phones := phone.NewNormalizer(cfg.Phone.DefaultRegion)

	policy, err := NewPasswordPolicy(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to build password policy: %w", err)
	}

	// Initialize repositories
	identityRepo := repository.NewIdentityRepository()
	adminProfileRepo := repository.NewAdminProfileRepository()
	mobileProfileRepo := repository.NewMobileProfileRepository()
	professionalRepo := repository.NewProfessionalRepository()
	reviewRepo := repository.NewProfessionalReviewRepository()
	bookRepo := repository.NewBookRepository()
	eventRepo := repository.NewEventRepository()
	materialRepo := repository.NewMaterialRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	fileService := service.NewFileService(store, log, m, cfg.Upload.MaxSize)
	blacklist := service.NewTokenBlacklist(redisClient)
	dispatcher := service.NewOTPDispatcher(nc, cfg.NATS.OTPSubject, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, identityRepo, adminProfileRepo, jwtService, blacklist, auditService, policy, m)
	mobileAuthUsecase := usecase.NewMobileAuthUsecase(db, log, identityRepo, mobileProfileRepo, jwtService, dispatcher, fileService, policy, phones, cfg.OTP, m)
	accountUsecase := usecase.NewAccountUsecase(db, log, adminProfileRepo, auditService, fileService, phones)
	mobileUserUsecase := usecase.NewMobileUserUsecase(db, log, identityRepo, mobileProfileRepo, auditService, fileService, policy, phones)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, professionalRepo, reviewRepo, auditService, fileService, phones)
	bookUsecase := usecase.NewBookUsecase(db, log, bookRepo, auditService, fileService)
	eventUsecase := usecase.NewEventUsecase(db, log, eventRepo, auditService, fileService)
	materialUsecase := usecase.NewMaterialUsecase(db, log, materialRepo, auditService, fileService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	maxMemory := cfg.Upload.MaxMemory
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Account:      handler.NewAccountHandler(accountUsecase, customValidator, maxMemory),
		Mobile:       handler.NewMobileHandler(mobileAuthUsecase, authUsecase, customValidator, maxMemory),
		MobileUser:   handler.NewMobileUserHandler(mobileUserUsecase, customValidator, cfg.App.BaseURL, maxMemory),
		Professional: handler.NewProfessionalHandler(professionalUsecase, customValidator, cfg.App.BaseURL, maxMemory),
		Book:         handler.NewBookHandler(bookUsecase, customValidator, cfg.App.BaseURL, maxMemory),
		Event:        handler.NewEventHandler(eventUsecase, customValidator, cfg.App.BaseURL, maxMemory),
		Material:     handler.NewMaterialHandler(materialUsecase, customValidator, cfg.App.BaseURL, maxMemory),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase, cfg.App.BaseURL),
	}

	// Initialize middleware
	proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtService, blacklist, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)
	observe := middleware.NewObserveMiddleware(log, m, proxies)
	rateLimiter := middleware.NewRateLimiter(redisClient, log, m, proxies)

	checks := map[string]deliveryHttp.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}

	// Initialize router
	router := deliveryHttp.NewRouter(
		handlers,
		authMiddleware,
		corsMiddleware,
		observe,
		rateLimiter,
		deliveryHttp.Throttle{LoginPerMinute: cfg.RateLimit.LoginPerMinute, OTPPerMinute: cfg.OTP.RequestsPerMin},
		m.Handler(),
		checks,
	)
	router.SetBodyLimits(0, cfg.Upload.MaxBody)
	if local, ok := store.(*storage.LocalStorage); ok {
		router.ServeMedia(cfg.Storage.PublicBaseURL, local.FileSystem())
	}
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
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

// Close closes all connections (database, redis, nats)
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

	// Flush pending OTP events before closing
	if app.NATS != nil {
		if err := app.NATS.Drain(); err != nil {
			logrus.Warnf("Failed to drain NATS connection: %v", err)
		}
	}
}
