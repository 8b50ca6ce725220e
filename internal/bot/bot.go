package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vprudnikov/tablitsa-bot/internal/flow"
	"github.com/vprudnikov/tablitsa-bot/internal/infra/metrics"
)

// Bot — адаптер Telegram-транспорта над машиной диалога.
type Bot struct {
	api     *tgbotapi.BotAPI
	log     *slog.Logger
	machine *flow.Machine
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, machine *flow.Machine) *Bot {
	return &Bot{api: api, log: log, machine: machine}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Error("answer callback failed", "err", err)
	}
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// respond переводит ответ машины (или её ошибку) в исходящее
// сообщение. editMsgID != 0 — правим сообщение прошлого шага.
func (b *Bot) respond(chatID int64, editMsgID int, reply *flow.Reply, err error) {
	if err != nil {
		var ve *flow.ValidationError
		var ise *flow.InsufficientStockError
		switch {
		case errors.Is(err, flow.ErrIgnored):
			// текст не для нас
		case errors.As(err, &ve):
			metrics.FinalizationErrorsTotal.WithLabelValues("validation").Inc()
			b.send(tgbotapi.NewMessage(chatID, "Введите число."))
		case errors.As(err, &ise):
			metrics.FinalizationErrorsTotal.WithLabelValues("insufficient_stock").Inc()
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Недостаточно на складе (%d шт).", ise.Current)))
		default:
			metrics.FinalizationErrorsTotal.WithLabelValues("data_source").Inc()
			b.log.Error("обработка события", "chat_id", chatID, "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Ошибка обработки. Начните заново: /start"))
		}
		return
	}
	if reply == nil {
		return
	}
	if reply.Outcome != nil {
		metrics.FinalizationsTotal.WithLabelValues(string(reply.Outcome.Action)).Inc()
	}

	if editMsgID != 0 {
		if len(reply.Choices) > 0 {
			b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, reply.Text, inlineKeyboard(reply.Choices)))
		} else {
			b.editTextAndClear(chatID, editMsgID, reply.Text)
		}
		return
	}
	m := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Choices) > 0 {
		m.ReplyMarkup = inlineKeyboard(reply.Choices)
	}
	b.send(m)
}
