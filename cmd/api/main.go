package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mysahara/health-assistant/backend/internal/adapters/cache"
	"github.com/mysahara/health-assistant/backend/internal/adapters/database"
	"github.com/mysahara/health-assistant/backend/internal/api/handlers"
	"github.com/mysahara/health-assistant/backend/internal/api/middleware"
	"github.com/mysahara/health-assistant/backend/internal/api/routes"
	"github.com/mysahara/health-assistant/backend/internal/application/services"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	"github.com/mysahara/health-assistant/backend/internal/domain/repositories"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/gemini"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/groq"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/postgres"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/redis"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/clients/vision"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/notifications"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/observability"
	"github.com/mysahara/health-assistant/backend/pkg/config"
)

func main() {

	// Load configuration

	_ = godotenv.Load()

	cfg, err := config.Load()

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client. The AI endpoints work without Postgres;
	// only chat history and notifications need it.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize PostgreSQL client; history and notifications disabled")
		pgClient = nil
	} else {
		defer pgClient.Close()
		log.Info().Msg("PostgreSQL client initialized")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client; continuing without caching")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize AI provider clients in fallback order

	var chatProviders []providers.ChatProvider
	var providerNames []string

	var groqClient *groq.Client
	if cfg.Groq.APIKey == "" {
		log.Warn().Msg("GROQ_API_KEY is not set; primary chat provider disabled")
	} else {
		groqClient, err = groq.NewClient(&cfg.Groq)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Groq client")
		} else {
			chatProviders = append(chatProviders, groqClient)
			providerNames = append(providerNames, groqClient.Name())
		}
	}

	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; fallback chat provider disabled")
	} else {
		geminiClient, err := gemini.NewClient(&cfg.Gemini)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Gemini client")
		} else {
			chatProviders = append(chatProviders, geminiClient)
			providerNames = append(providerNames, geminiClient.Name())
		}
	}

	var ocrProvider providers.OCRProvider
	if cfg.Vision.APIKey == "" {
		log.Warn().Msg("VISION_API_KEY is not set; OCR disabled")
	} else {
		visionClient, err := vision.NewClient(&cfg.Vision)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Vision client")
		} else {
			ocrProvider = visionClient
		}
	}

	var pushSender providers.PushSender
	if cfg.FCM.ServerKey == "" {
		log.Warn().Msg("FCM_SERVER_KEY is not set; push notifications disabled")
	} else {
		fcmSender, err := notifications.NewFCMSender(&cfg.FCM)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize FCM sender")
		} else {
			pushSender = fcmSender
		}
	}

	// Initialize services

	prompts := services.NewPromptBuilder()

	var chatLogs repositories.ChatLogRepository
	if pgClient != nil {
		chatLogs = database.NewChatLogAdapter(pgClient)
	}
	chatService := services.NewChatService(chatProviders, prompts, chatLogs)

	healthService := services.NewHealthService(chatService, prompts, cacheProvider)
	documentService := services.NewDocumentService(ocrProvider, cacheProvider)
	familyService := services.NewFamilyService(chatService, prompts)

	// The nutrition planner needs structured JSON output, which only the
	// Groq client supports.
	var nutritionService *services.NutritionService
	if groqClient != nil {
		nutritionService = services.NewNutritionService(groqClient, prompts)
	} else {
		nutritionService = services.NewNutritionService(nil, prompts)
	}

	var notificationService *services.NotificationService
	var schedulerService *services.SchedulerService
	if pgClient != nil {
		tokenAdapter := database.NewDeviceTokenAdapter(pgClient)
		reminderAdapter := database.NewReminderAdapter(pgClient)
		notificationService = services.NewNotificationService(pushSender, tokenAdapter, reminderAdapter)

		schedulerService = services.NewSchedulerService(cfg.Scheduler, notificationService, notificationService.RemindersDue)
		schedulerService.Start(ctx)
		defer schedulerService.Stop()
	} else {
		log.Warn().Msg("notification endpoints disabled (PostgreSQL unavailable)")
	}

	// Initialize handlers

	chatHandler := handlers.NewChatHandler(chatService)

	healthHandler := handlers.NewHealthHandler(healthService)

	documentHandler := handlers.NewDocumentHandler(documentService)

	familyHandler := handlers.NewFamilyHandler(familyService)

	nutritionHandler := handlers.NewNutritionHandler(nutritionService)

	var notificationHandler *handlers.NotificationHandler
	if notificationService != nil {
		notificationHandler = handlers.NewNotificationHandler(notificationService)
	}

	var databasePinger, cachePinger handlers.Pinger
	if pgClient != nil {
		databasePinger = pgClient
	}
	if redisClient != nil {
		cachePinger = redisClient
	}
	statusHandler := handlers.NewStatusHandler(databasePinger, cachePinger, providerNames)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Info().Msg("cache middleware initialized")
	}

	// Set up router

	router := routes.NewRouter(
		chatHandler,
		healthHandler,
		documentHandler,
		familyHandler,
		nutritionHandler,
		notificationHandler,
		statusHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Strs("providers", providerNames).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
