package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"pushresume/database"
	"pushresume/internal/config"
	"pushresume/internal/handlers"
	"pushresume/internal/jobs"
	"pushresume/internal/logger"
	"pushresume/internal/middleware"
	"pushresume/internal/models"
	"pushresume/internal/notify"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/internal/routes"
	"pushresume/internal/services"
	"pushresume/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v7"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	registry, err := providers.Build(cfg)
	if err != nil {
		logger.Fatal("Failed to build providers", "error", err)
	}
	logger.Info("Providers loaded", "providers", registry.Names())

	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	serviceContainer := initializeServices(cfg, gormDB, cache, registry)

	transports := buildTransports(cfg)

	appHandlers := initializeHandlers(cfg, serviceContainer, transports)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := initializeJobs(cfg, gormDB, registry, serviceContainer, transports)
	runner.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	cache *redis.Client,
	registry *providers.Registry,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	accountRepo := repositories.NewAccountRepository(gormDB)
	resumeRepo := repositories.NewResumeRepository(gormDB)
	confirmationRepo := repositories.NewConfirmationRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	authService := services.NewAuthService(gormDB, registry, userRepo, accountRepo)
	resumeService := services.NewResumeService(gormDB, registry, resumeRepo, accountRepo)
	notificationService := services.NewNotificationService(cfg, confirmationRepo, subscriptionRepo, notificationRepo)
	statusService := services.NewStatusService(
		cfg, cache, registry,
		userRepo, accountRepo, resumeRepo,
		confirmationRepo, subscriptionRepo, notificationRepo,
	)

	return &services.ServiceContainer{
		AuthService:         authService,
		ResumeService:       resumeService,
		NotificationService: notificationService,
		StatusService:       statusService,
	}
}

// buildTransports собирает транспорты для каналов из конфигурации.
// Канал без транспорта - ошибка конфигурации, падаем на старте.
func buildTransports(cfg *config.Config) notify.Transports {
	transports := make(notify.Transports)
	for _, channel := range cfg.Notifications.Channels {
		switch channel {
		case models.ChannelTelegram:
			transports[channel] = notify.NewTelegram(cfg.Telegram.APIURL, cfg.Telegram.Token)
		case models.ChannelEmail:
			transports[channel] = notify.NewEmail(
				cfg.Email.SMTPHost, cfg.Email.SMTPPort,
				cfg.Email.SMTPUsername, cfg.Email.SMTPPassword,
				cfg.Email.FromEmail, cfg.Email.FromName,
			)
		default:
			logger.Fatal("Unknown notification channel", "channel", channel)
		}
	}
	return transports
}

func initializeHandlers(
	cfg *config.Config,
	services *services.ServiceContainer,
	transports notify.Transports,
) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		ResumeHandler:       handlers.NewResumeHandler(baseHandler, services.ResumeService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		StatusHandler:       handlers.NewStatusHandler(baseHandler, services.StatusService),
		BotHandler: handlers.NewBotHandler(
			baseHandler, cfg, services.NotificationService,
			transports[models.ChannelTelegram],
		),
	}
}

// initializeJobs регистрирует все фоновые джобы с периодами из
// конфигурации.
func initializeJobs(
	cfg *config.Config,
	gormDB *gorm.DB,
	registry *providers.Registry,
	services *services.ServiceContainer,
	transports notify.Transports,
) *jobs.Runner {
	userRepo := repositories.NewUserRepository(gormDB)
	accountRepo := repositories.NewAccountRepository(gormDB)
	resumeRepo := repositories.NewResumeRepository(gormDB)
	confirmationRepo := repositories.NewConfirmationRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	cleanup := jobs.NewCleanupJobs(
		cfg, userRepo, accountRepo, resumeRepo,
		confirmationRepo, subscriptionRepo, notificationRepo,
	)
	refresh := jobs.NewRefreshJob(registry, accountRepo, services.NotificationService)
	push := jobs.NewPushJob(registry, resumeRepo, services.NotificationService)
	notifyJob := jobs.NewNotifyJob(
		subscriptionRepo, notificationRepo, transports,
		cfg.Notifications.RatePerSec,
	)

	runner := jobs.NewRunner()
	runner.Register("cleanup-users", cfg.CleanupInterval(), cleanup.Users)
	runner.Register("cleanup-accounts", cfg.CleanupInterval(), cleanup.Accounts)
	runner.Register("cleanup-resumes", cfg.CleanupInterval(), cleanup.Resumes)
	runner.Register("cleanup-confirmations", cfg.CleanupInterval(), cleanup.Confirmations)
	runner.Register("cleanup-subscriptions", cfg.CleanupInterval(), cleanup.Subscriptions)
	runner.Register("cleanup-notifications", cfg.CleanupInterval(), cleanup.Notifications)
	runner.Register("reauth", cfg.RefreshInterval(), refresh.Run)
	runner.Register("push", cfg.PushInterval(), push.Run)
	runner.Register("notify", cfg.NotifyInterval(), notifyJob.Run)
	return runner
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}
