package dialog

// State — шаг диалога. Переходы идут строго по порядку,
// перепрыгнуть шаг нельзя.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitAction   State = "await_action"
	StateAwaitType     State = "await_type"
	StateAwaitCategory State = "await_category"
	StateAwaitProduct  State = "await_product"
	StateAwaitQuantity State = "await_quantity"
)

// Action — что делаем с остатком.
type Action string

const (
	ActionSell    Action = "sell"
	ActionRestock Action = "add"
)

// SelectedProduct — выбранный товар. Stock — остаток, прочитанный
// из листа в момент выбора, а не из какого-либо кэша.
type SelectedProduct struct {
	Name  string
	Row   int
	Stock int
}

// Session — состояние одного незавершённого выбора. Живёт в памяти,
// ключуется по chat_id и уничтожается после финализации или /start.
type Session struct {
	State             State
	Action            Action
	ProductType       string
	Category          string
	Product           *SelectedProduct
	AwaitingManualQty bool
}
