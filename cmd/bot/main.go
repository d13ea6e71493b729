package main

import (
	"TeleCloud/internal/batch"
	"TeleCloud/internal/bot"
	"TeleCloud/internal/config"
	"TeleCloud/internal/pending"
	"TeleCloud/internal/repo"
	"TeleCloud/internal/service"
	"TeleCloud/internal/telegram"
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if cfg.BotToken == "" {
		sugar.Fatalw("BOT_TOKEN is not set")
	}

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
	storage.SetMaxFolderName(cfg.MaxFolderName)

	tg, err := telegram.NewClient(cfg.BotToken, sugar)
	if err != nil {
		sugar.Fatalw("failed to connect to telegram", "error", err)
	}

	b := bot.New(bot.Options{
		Storage:        storage,
		Messenger:      tg,
		Pending:        pending.NewRegistry(),
		Clock:          batch.NewSystemClock(),
		Policy:         cfg.BatchPolicy(),
		Logger:         sugar,
		GalleryURL:     cfg.GalleryURL,
		MaxFilesToShow: cfg.MaxFilesToShow,
	})
	defer b.Close()

	sugar.Infow("Bot started",
		"DatabaseDSN", cfg.DatabaseDSN,
		"BatchPolicy", cfg.BatchPolicy(),
		"GalleryURL", cfg.GalleryURL,
	)

	if err := tg.Run(ctx, b); err != nil {
		sugar.Errorw("bot loop stopped", "error", err)
	}
	sugar.Infow("Bot stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogJSON {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
