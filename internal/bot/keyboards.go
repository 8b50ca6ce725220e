package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vprudnikov/tablitsa-bot/internal/flow"
)

// Короткие меню (действие, тип) умещаются в одну строку,
// списки подкатегорий и товаров — по кнопке на строку.
func inlineKeyboard(choices []flow.Choice) tgbotapi.InlineKeyboardMarkup {
	if len(choices) <= 2 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(choices))
		for _, c := range choices {
			row = append(row, choiceButton(c))
		}
		return tgbotapi.NewInlineKeyboardMarkup(row)
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(choiceButton(c)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func choiceButton(c flow.Choice) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(c.Label, callbackData(c.Event))
}
