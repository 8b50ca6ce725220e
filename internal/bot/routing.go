package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vprudnikov/tablitsa-bot/internal/dialog"
	"github.com/vprudnikov/tablitsa-bot/internal/flow"
	"github.com/vprudnikov/tablitsa-bot/internal/infra/metrics"
)

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	metrics.UpdatesTotal.WithLabelValues("message").Inc()
	msg := upd.Message
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// свободный текст — только ручной ввод количества
	reply, err := b.machine.Apply(ctx, chatID, flow.TextEntered{Text: msg.Text})
	b.respond(chatID, 0, reply, err)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		reply, err := b.machine.Apply(ctx, chatID, flow.Reset{})
		b.respond(chatID, 0, reply, err)
	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Команды:\n/start — начать выбор заново\n/help — помощь"))
	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /help"))
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	metrics.UpdatesTotal.WithLabelValues("callback").Inc()
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	b.answerCallback(cb)

	ev, ok := parseCallback(cb.Data)
	if !ok {
		b.log.Warn("неизвестный callback", "chat_id", chatID, "data", cb.Data)
		return
	}
	reply, err := b.machine.Apply(ctx, chatID, ev)
	b.respond(chatID, cb.Message.MessageID, reply, err)
}

// Тэги callback data на проводе: action: / type: / cat: / prod: / qty:.
// Внутрь машины они не проходят — только типизированные события.
func callbackData(ev flow.Event) string {
	switch ev := ev.(type) {
	case flow.ActionChosen:
		return "action:" + string(ev.Action)
	case flow.TypeChosen:
		return "type:" + ev.Name
	case flow.CategoryChosen:
		return "cat:" + ev.Name
	case flow.ProductChosen:
		return fmt.Sprintf("prod:%d", ev.Row)
	case flow.QuantityChosen:
		return fmt.Sprintf("qty:%d", ev.Qty)
	case flow.OtherQuantity:
		return "qty:other"
	}
	return ""
}

func parseCallback(data string) (flow.Event, bool) {
	switch {
	case data == "qty:other":
		return flow.OtherQuantity{}, true
	case strings.HasPrefix(data, "action:"):
		a := dialog.Action(strings.TrimPrefix(data, "action:"))
		if a != dialog.ActionSell && a != dialog.ActionRestock {
			return nil, false
		}
		return flow.ActionChosen{Action: a}, true
	case strings.HasPrefix(data, "type:"):
		return flow.TypeChosen{Name: strings.TrimPrefix(data, "type:")}, true
	case strings.HasPrefix(data, "cat:"):
		return flow.CategoryChosen{Name: strings.TrimPrefix(data, "cat:")}, true
	case strings.HasPrefix(data, "prod:"):
		row, err := strconv.Atoi(strings.TrimPrefix(data, "prod:"))
		if err != nil || row <= 0 {
			return nil, false
		}
		return flow.ProductChosen{Row: row}, true
	case strings.HasPrefix(data, "qty:"):
		n, err := strconv.Atoi(strings.TrimPrefix(data, "qty:"))
		if err != nil || n <= 0 {
			return nil, false
		}
		return flow.QuantityChosen{Qty: n}, true
	}
	return nil, false
}
