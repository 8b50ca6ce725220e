package flow

import "github.com/vprudnikov/tablitsa-bot/internal/dialog"

// Event — типизированное событие диалога. Транспорт разбирает
// callback data и текст в эти варианты на своей границе, внутри
// машины строковых тегов нет.
type Event interface{ isEvent() }

// Reset — /start или явный сброс: прежняя сессия уничтожается.
type Reset struct{}

// ActionChosen — выбрано действие (продажа/пополнение).
type ActionChosen struct{ Action dialog.Action }

// TypeChosen — выбран тип товара.
type TypeChosen struct{ Name string }

// CategoryChosen — выбрана подкатегория.
type CategoryChosen struct{ Name string }

// ProductChosen — выбран товар, Row адресует строку листа.
type ProductChosen struct{ Row int }

// QuantityChosen — количество с быстрой кнопки.
type QuantityChosen struct{ Qty int }

// OtherQuantity — кнопка «Другое»: дальше ждём число текстом.
type OtherQuantity struct{}

// TextEntered — произвольное текстовое сообщение.
type TextEntered struct{ Text string }

func (Reset) isEvent()          {}
func (ActionChosen) isEvent()   {}
func (TypeChosen) isEvent()     {}
func (CategoryChosen) isEvent() {}
func (ProductChosen) isEvent()  {}
func (QuantityChosen) isEvent() {}
func (OtherQuantity) isEvent()  {}
func (TextEntered) isEvent()    {}

// Choice — пункт меню очередного шага в порядке каталога.
// Event отдаётся обратно в Apply при выборе пункта.
type Choice struct {
	Label string
	Event Event
}

// Outcome — результат успешной финализации.
type Outcome struct {
	Action   dialog.Action
	Qty      int
	Product  string
	NewStock int
}

// Reply — что показать пользователю после события.
type Reply struct {
	Text    string
	Choices []Choice
	Outcome *Outcome
}
