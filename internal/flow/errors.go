package flow

import (
	"errors"
	"fmt"
)

// ErrIgnored — событие не для этой машины (например, текст, когда
// ручной ввод количества не ожидается). Вызывающий оставляет такое
// сообщение другой обработке.
var ErrIgnored = errors.New("событие не относится к диалогу")

// ValidationError — ручной ввод не является неотрицательным целым.
// Сессия не меняется, пользователь может повторить ввод.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("некорректное количество %q", e.Input)
}

// InsufficientStockError — продажа увела бы остаток в минус.
// Сессия после этой ошибки уничтожена, выбор нужно начать заново.
type InsufficientStockError struct {
	Current int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("недостаточно на складе (%d шт)", e.Current)
}
