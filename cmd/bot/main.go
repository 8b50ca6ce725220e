package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vprudnikov/tablitsa-bot/internal/bot"
	"github.com/vprudnikov/tablitsa-bot/internal/config"
	"github.com/vprudnikov/tablitsa-bot/internal/dialog"
	"github.com/vprudnikov/tablitsa-bot/internal/flow"
	httpx "github.com/vprudnikov/tablitsa-bot/internal/infra/http"
	"github.com/vprudnikov/tablitsa-bot/internal/infra/logger"
	"github.com/vprudnikov/tablitsa-bot/internal/infra/sheet"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "user", api.Self.UserName)

	blocks := make([]sheet.Block, 0, len(cfg.Sheet.Blocks))
	for _, b := range cfg.Sheet.Blocks {
		blocks = append(blocks, sheet.Block{Header: b.Header, Title: b.Title, Type: b.Type})
	}
	src := sheet.New(cfg.Sheet.Path, cfg.Sheet.Name, cfg.Sheet.StartRow, blocks)

	machine := flow.New(dialog.NewMemoryStore(), src, log)
	b := bot.New(api, log, machine)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	log.Info("бот запущен")
	if err := b.Run(ctx, 30); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
