package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vprudnikov/tablitsa-bot/internal/config"
	"github.com/vprudnikov/tablitsa-bot/internal/infra/logger"
)

// Разовая рассылка одного сообщения по списку чатов из конфига.
// Ошибка по одному адресату не прерывает остальных.
func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if cfg.Mailer.Text == "" || len(cfg.Mailer.Targets) == 0 {
		log.Error("рассылка не настроена: нужны mailer.text и mailer.targets")
		return
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}

	sent := 0
	for _, target := range cfg.Mailer.Targets {
		if _, err := api.Send(tgbotapi.NewMessage(target, cfg.Mailer.Text)); err != nil {
			log.Error("ошибка при отправке", "target", target, "err", err)
			continue
		}
		log.Info("отправлено", "target", target)
		sent++
	}
	log.Info("рассылка завершена", "sent", sent, "total", len(cfg.Mailer.Targets))
}
