package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daniyar05/esports-tournament-system/config"
	"github.com/Daniyar05/esports-tournament-system/db"
	"github.com/Daniyar05/esports-tournament-system/handlers"
	"github.com/Daniyar05/esports-tournament-system/live"
	"github.com/Daniyar05/esports-tournament-system/middleware"
	"github.com/Daniyar05/esports-tournament-system/repositories"
	api "github.com/Daniyar05/esports-tournament-system/routes"
	"github.com/Daniyar05/esports-tournament-system/services"
	"github.com/Daniyar05/esports-tournament-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const schedulerInterval = 30 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	pollRepo := repositories.NewPostgresPollRepository(dbConn)
	walletRepo := repositories.NewPostgresWalletRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	seasonService := services.NewSeasonService(dbConn, seasonRepo)
	walletService := services.NewWalletService(walletRepo)
	tournamentService := services.NewTournamentService(
		dbConn,
		tournamentRepo,
		seasonRepo,
		teamRepo,
		walletService,
		cloudflareUploader,
		wsHub,
		logger,
	)
	teamService := services.NewTeamService(dbConn, teamRepo, tournamentRepo, walletService, cloudflareUploader)
	standingsService := services.NewStandingsService(tournamentRepo, teamRepo, wsHub)
	exportService := services.NewExportService(standingsService)
	pollService := services.NewPollService(pollRepo, wsHub, logger)
	logger.Info("Services initialized")

	// Планировщик: автопереключение статусов турниров и закрытие
	// просроченных опросов.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("scheduler started", slog.Duration("interval", schedulerInterval))

		runOnce := func() {
			if err := tournamentService.AutoUpdateTournamentStatusesByDates(context.Background()); err != nil {
				logger.Error("scheduler: tournament status update failed", slog.Any("error", err))
			}
			if err := pollService.CloseExpiredPolls(context.Background()); err != nil {
				logger.Error("scheduler: closing expired polls failed", slog.Any("error", err))
			}
		}

		runOnce()
		for range ticker.C {
			runOnce()
		}
	}()

	// Инициализация обработчиков HTTP
	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	seasonHandler := handlers.NewSeasonHandler(seasonService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(teamService, standingsService)
	standingsHandler := handlers.NewStandingsHandler(standingsService, exportService)
	pollHandler := handlers.NewPollHandler(pollService)
	walletHandler := handlers.NewWalletHandler(walletService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, standingsService)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		seasonHandler,
		tournamentHandler,
		teamHandler,
		standingsHandler,
		pollHandler,
		walletHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
