package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/config"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/database"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/handlers"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/logging"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/mailer"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/middleware"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/services"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/session"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/store"
)

func main() {
	// 1. Load Environment Variables
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "job-application-tracker",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	logger.Info("starting service")

	ctx := context.Background()

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connect", "error", err)
		os.Exit(1)
	}
	st := store.New(db)

	// 3. Session Store & Mailer
	sessions := session.NewMemoryStore(cfg.SessionTTL)
	defer sessions.Close()

	mail, err := newMailer(ctx, cfg, logger)
	if err != nil {
		logger.Error("mailer init", "error", err)
		os.Exit(1)
	}

	// 4. Core Services
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("llm init", "error", err)
		os.Exit(1)
	}

	passwords := services.NewPasswordService()
	authService := services.NewAuthService(st.Users(), sessions, passwords, mail, logger, cfg.OTPTTL, cfg.OTPMaxAttempts)
	jobService := services.NewJobService(st.Jobs(), logger)
	extractService := services.NewExtractService(llmService, st.Jobs(), logger)

	// 5. Daily Reminder Task
	loc, err := time.LoadLocation(cfg.ReminderTimezone)
	if err != nil {
		logger.Error("load reminder timezone", "tz", cfg.ReminderTimezone, "error", err)
		os.Exit(1)
	}
	reminder := services.NewReminderService(st.Jobs(), mail, logger, cfg.ReminderHour, loc)
	reminder.Start(ctx)

	// 6. Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.SessionTTL, cfg.OTPTTL)
	jobHandler := handlers.NewJobHandler(jobService, extractService)

	// 7. Router & CORS
	if cfg.Environment != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // browser extension posts from arbitrary origins
	corsConfig.AllowCredentials = false
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 8. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/verify-otp", authHandler.VerifyOTP)
		api.POST("/auth/login", authHandler.Login)

		authed := api.Group("", middleware.RequireSession(sessions))
		{
			authed.POST("/auth/logout", authHandler.Logout)

			authed.GET("/jobs", jobHandler.List)
			authed.POST("/jobs", jobHandler.Create)
			authed.PUT("/jobs/:id", jobHandler.Update)
			authed.DELETE("/jobs/:id", jobHandler.Delete)
			authed.GET("/jobs/search", jobHandler.Search)

			authed.POST("/ingest", jobHandler.Ingest)
		}
	}

	logger.Info("server listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newMailer(ctx context.Context, cfg config.Config, logger *slog.Logger) (mailer.Mailer, error) {
	switch cfg.MailProvider {
	case "gmail":
		return mailer.NewGmailMailer(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile, cfg.MailFrom)
	case "smtp":
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom), nil
	default:
		logger.Warn("mail provider set to log only; no mail will be delivered", "provider", cfg.MailProvider)
		return &mailer.LogMailer{Logger: logger}, nil
	}
}
