package main

import (
	"TeleCloud/internal/config"
	"TeleCloud/internal/handlers"
	"TeleCloud/internal/middleware"
	"TeleCloud/internal/repo"
	"TeleCloud/internal/service"
	"TeleCloud/internal/telegram"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	storage := service.NewStorageService(
		repo.NewUserRepository(gormDB),
		repo.NewFolderRepository(gormDB),
		repo.NewFileRepository(gormDB),
		sugar,
	)

	// без токена ссылки на файлы недоступны, остальное API работает
	var linker handlers.FileLinker
	if cfg.BotToken != "" {
		tg, err := telegram.NewClient(cfg.BotToken, sugar)
		if err != nil {
			sugar.Warnw("telegram unavailable, file links disabled", "error", err)
		} else {
			linker = tg
		}
	}

	h := handlers.NewHandler(storage, linker, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"FileLinks", linker != nil,
	)

	srv := &http.Server{Addr: addr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogJSON {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
