package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vprudnikov/tablitsa-bot/internal/dialog"
	"github.com/vprudnikov/tablitsa-bot/internal/flow"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	events := []flow.Event{
		flow.ActionChosen{Action: dialog.ActionSell},
		flow.ActionChosen{Action: dialog.ActionRestock},
		flow.TypeChosen{Name: "Жидкости"},
		flow.CategoryChosen{Name: "Расходники"},
		flow.ProductChosen{Row: 12},
		flow.QuantityChosen{Qty: 5},
		flow.OtherQuantity{},
	}
	for _, ev := range events {
		data := callbackData(ev)
		require.NotEmpty(t, data)
		got, ok := parseCallback(data)
		require.True(t, ok, data)
		assert.Equal(t, ev, got, data)
	}
}

func TestParseCallbackRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"", "nav:back", "action:eat", "prod:abc", "prod:0", "prod:-1",
		"qty:", "qty:abc", "qty:-2", "qty:0",
	} {
		_, ok := parseCallback(data)
		assert.False(t, ok, data)
	}
}

func TestInlineKeyboardLayout(t *testing.T) {
	short := inlineKeyboard([]flow.Choice{
		{Label: "Продать", Event: flow.ActionChosen{Action: dialog.ActionSell}},
		{Label: "Пополнить", Event: flow.ActionChosen{Action: dialog.ActionRestock}},
	})
	require.Len(t, short.InlineKeyboard, 1)
	assert.Len(t, short.InlineKeyboard[0], 2)

	long := inlineKeyboard([]flow.Choice{
		{Label: "1", Event: flow.QuantityChosen{Qty: 1}},
		{Label: "2", Event: flow.QuantityChosen{Qty: 2}},
		{Label: "5", Event: flow.QuantityChosen{Qty: 5}},
		{Label: "Другое", Event: flow.OtherQuantity{}},
	})
	require.Len(t, long.InlineKeyboard, 4)
	assert.Equal(t, "qty:other", *long.InlineKeyboard[3][0].CallbackData)
}
