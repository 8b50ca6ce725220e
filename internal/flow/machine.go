package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vprudnikov/tablitsa-bot/internal/dialog"
	"github.com/vprudnikov/tablitsa-bot/internal/domain/catalog"
)

// Source — источник данных ассортимента. Контракт: каждое обращение
// перечитывает лист заново, никакого кэша между шагами нет.
type Source interface {
	Catalog(ctx context.Context) (catalog.Catalog, error)
	ReadRow(ctx context.Context, row int) (catalog.Row, error)
	WriteStock(ctx context.Context, row, qty int) error
}

// Быстрые кнопки количества.
var quickQuantities = []int{1, 2, 5}

// Machine ведёт диалог выбора и финализацию. Переходы только от
// предыдущего шага; событие не в своём состоянии получает подсказку
// начать заново.
type Machine struct {
	store  dialog.Store
	source Source
	log    *slog.Logger

	// финализации по одной строке сериализуются
	mu    sync.Mutex
	rowMu map[int]*sync.Mutex
}

func New(store dialog.Store, source Source, log *slog.Logger) *Machine {
	return &Machine{
		store:  store,
		source: source,
		log:    log,
		rowMu:  make(map[int]*sync.Mutex),
	}
}

var replyRestart = &Reply{Text: "Сессия не найдена. Наберите /start, чтобы начать заново."}

// Apply проводит событие через машину состояний для данного чата.
func (m *Machine) Apply(ctx context.Context, chatID int64, ev Event) (*Reply, error) {
	switch ev := ev.(type) {
	case Reset:
		return m.onReset(chatID)
	case ActionChosen:
		return m.onAction(ctx, chatID, ev.Action)
	case TypeChosen:
		return m.onType(ctx, chatID, ev.Name)
	case CategoryChosen:
		return m.onCategory(ctx, chatID, ev.Name)
	case ProductChosen:
		return m.onProduct(ctx, chatID, ev.Row)
	case QuantityChosen:
		return m.onQuantity(ctx, chatID, ev.Qty)
	case OtherQuantity:
		return m.onOtherQuantity(chatID)
	case TextEntered:
		return m.onText(ctx, chatID, ev.Text)
	default:
		return nil, fmt.Errorf("неизвестное событие %T", ev)
	}
}

func (m *Machine) session(chatID int64, want dialog.State) (*dialog.Session, bool) {
	s, ok := m.store.Get(chatID)
	if !ok || s.State != want {
		return nil, false
	}
	return s, true
}

func (m *Machine) onReset(chatID int64) (*Reply, error) {
	m.store.Clear(chatID)
	m.store.Set(chatID, &dialog.Session{State: dialog.StateAwaitAction})
	return &Reply{
		Text: "Выберите действие:",
		Choices: []Choice{
			{Label: "Продать", Event: ActionChosen{Action: dialog.ActionSell}},
			{Label: "Пополнить", Event: ActionChosen{Action: dialog.ActionRestock}},
		},
	}, nil
}

func (m *Machine) onAction(ctx context.Context, chatID int64, action dialog.Action) (*Reply, error) {
	s, ok := m.session(chatID, dialog.StateAwaitAction)
	if !ok {
		return replyRestart, nil
	}
	s.Action = action
	s.State = dialog.StateAwaitType
	m.store.Set(chatID, s)

	prompt := "Выберите тип для продажи:"
	if action == dialog.ActionRestock {
		prompt = "Выберите тип для пополнения:"
	}
	cat, err := m.source.Catalog(ctx)
	if err != nil {
		return nil, m.fatal(chatID, "чтение каталога", err)
	}
	choices := make([]Choice, 0, len(cat.Types))
	for _, t := range cat.Types {
		choices = append(choices, Choice{Label: t.Name, Event: TypeChosen{Name: t.Name}})
	}
	return &Reply{Text: prompt, Choices: choices}, nil
}

func (m *Machine) onType(ctx context.Context, chatID int64, name string) (*Reply, error) {
	s, ok := m.session(chatID, dialog.StateAwaitType)
	if !ok {
		return replyRestart, nil
	}
	cat, err := m.source.Catalog(ctx)
	if err != nil {
		return nil, m.fatal(chatID, "чтение каталога", err)
	}
	t, ok := cat.TypeByName(name)
	if !ok {
		return nil, m.fatal(chatID, "выбор типа", fmt.Errorf("тип %q не найден", name))
	}
	s.ProductType = name
	s.State = dialog.StateAwaitCategory
	m.store.Set(chatID, s)

	choices := make([]Choice, 0, len(t.Categories))
	for _, c := range t.Categories {
		choices = append(choices, Choice{Label: c.Name, Event: CategoryChosen{Name: c.Name}})
	}
	text := fmt.Sprintf("%s → %s.\nВыберите подкатегорию:", actionTitle(s.Action), name)
	return &Reply{Text: text, Choices: choices}, nil
}

func (m *Machine) onCategory(ctx context.Context, chatID int64, name string) (*Reply, error) {
	s, ok := m.session(chatID, dialog.StateAwaitCategory)
	if !ok {
		return replyRestart, nil
	}
	cat, err := m.source.Catalog(ctx)
	if err != nil {
		return nil, m.fatal(chatID, "чтение каталога", err)
	}
	c, ok := cat.CategoryByName(s.ProductType, name)
	if !ok {
		return nil, m.fatal(chatID, "выбор подкатегории", fmt.Errorf("подкатегория %q не найдена", name))
	}
	s.Category = name
	s.State = dialog.StateAwaitProduct
	m.store.Set(chatID, s)

	choices := make([]Choice, 0, len(c.Products))
	for _, p := range c.Products {
		choices = append(choices, Choice{Label: p.Name, Event: ProductChosen{Row: p.Row}})
	}
	text := fmt.Sprintf("%s → %s → %s.\nВыберите товар:", actionTitle(s.Action), s.ProductType, name)
	return &Reply{Text: text, Choices: choices}, nil
}

func (m *Machine) onProduct(ctx context.Context, chatID int64, row int) (*Reply, error) {
	s, ok := m.session(chatID, dialog.StateAwaitProduct)
	if !ok {
		return replyRestart, nil
	}
	// остаток читаем из листа в момент выбора
	r, err := m.source.ReadRow(ctx, row)
	if err != nil {
		return nil, m.fatal(chatID, "чтение строки", err)
	}
	s.Product = &dialog.SelectedProduct{Name: r.Name, Row: row, Stock: r.Stock}
	s.State = dialog.StateAwaitQuantity
	m.store.Set(chatID, s)

	question := "Сколько продать?"
	if s.Action == dialog.ActionRestock {
		question = "Сколько добавить?"
	}
	choices := make([]Choice, 0, len(quickQuantities)+1)
	for _, n := range quickQuantities {
		choices = append(choices, Choice{Label: fmt.Sprintf("%d", n), Event: QuantityChosen{Qty: n}})
	}
	choices = append(choices, Choice{Label: "Другое", Event: OtherQuantity{}})
	text := fmt.Sprintf("Товар: %q. Остаток: %s.\n%s", r.Name, catalog.FormatQuantity(r.Stock), question)
	return &Reply{Text: text, Choices: choices}, nil
}

func (m *Machine) onQuantity(ctx context.Context, chatID int64, qty int) (*Reply, error) {
	s, ok := m.session(chatID, dialog.StateAwaitQuantity)
	if !ok {
		return replyRestart, nil
	}
	return m.finalize(ctx, chatID, s, qty)
}

func (m *Machine) onOtherQuantity(chatID int64) (*Reply, error) {
	s, ok := m.session(chatID, dialog.StateAwaitQuantity)
	if !ok {
		return replyRestart, nil
	}
	s.AwaitingManualQty = true
	m.store.Set(chatID, s)
	return &Reply{Text: "Пожалуйста, введите число:"}, nil
}

func (m *Machine) onText(ctx context.Context, chatID int64, text string) (*Reply, error) {
	s, ok := m.store.Get(chatID)
	if !ok || !s.AwaitingManualQty || s.State != dialog.StateAwaitQuantity {
		return nil, ErrIgnored
	}
	qty, err := catalog.ParseQuantity(text)
	if err != nil {
		// сессия не меняется, флаг ожидания остаётся
		return nil, &ValidationError{Input: text}
	}
	s.AwaitingManualQty = false
	m.store.Set(chatID, s)
	return m.finalize(ctx, chatID, s, qty)
}

// finalize считает новый остаток, проверяет его, пишет в источник
// и уничтожает сессию. Записи по одной строке взаимоисключающие.
func (m *Machine) finalize(ctx context.Context, chatID int64, s *dialog.Session, qty int) (*Reply, error) {
	p := s.Product
	if p == nil {
		return nil, m.fatal(chatID, "финализация", fmt.Errorf("товар не выбран"))
	}

	lock := m.rowLock(p.Row)
	lock.Lock()
	defer lock.Unlock()

	newStock := p.Stock + qty
	if s.Action == dialog.ActionSell {
		newStock = p.Stock - qty
	}
	if newStock < 0 {
		m.store.Clear(chatID)
		return nil, &InsufficientStockError{Current: p.Stock}
	}

	if err := m.source.WriteStock(ctx, p.Row, newStock); err != nil {
		return nil, m.fatal(chatID, "запись остатка", err)
	}
	m.store.Clear(chatID)

	verb := "Добавлено"
	if s.Action == dialog.ActionSell {
		verb = "Продано"
	}
	m.log.Info("остаток обновлён",
		"chat_id", chatID, "action", string(s.Action),
		"row", p.Row, "qty", qty, "new_stock", newStock)

	return &Reply{
		Text: fmt.Sprintf("%s %d шт %q. Новый остаток: %s.", verb, qty, p.Name, catalog.FormatQuantity(newStock)),
		Outcome: &Outcome{
			Action:   s.Action,
			Qty:      qty,
			Product:  p.Name,
			NewStock: newStock,
		},
	}, nil
}

func (m *Machine) rowLock(row int) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.rowMu[row]
	if !ok {
		l = &sync.Mutex{}
		m.rowMu[row] = l
	}
	return l
}

// fatal: любая ошибка источника данных фатальна для текущей
// операции — сессия уничтожается, пользователь начинает заново.
func (m *Machine) fatal(chatID int64, op string, err error) error {
	m.store.Clear(chatID)
	m.log.Error("диалог прерван", "chat_id", chatID, "op", op, "err", err)
	return fmt.Errorf("%s: %w", op, err)
}

func actionTitle(a dialog.Action) string {
	if a == dialog.ActionSell {
		return "Продажа"
	}
	return "Пополнение"
}
