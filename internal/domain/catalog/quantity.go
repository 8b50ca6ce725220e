package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Канонический текст остатка в ячейке: «12 шт».
const quantityUnit = "шт"

// FormatQuantity форматирует остаток для записи в ячейку.
func FormatQuantity(n int) string {
	return fmt.Sprintf("%d %s", n, quantityUnit)
}

// ParseQuantity разбирает неотрицательное целое из текста остатка
// («12 шт») или из ручного ввода пользователя («12»). Любой другой
// текст — ошибка; никакого выдёргивания цифр регуляркой.
func ParseQuantity(s string) (int, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSpace(strings.TrimSuffix(t, quantityUnit))
	if t == "" {
		return 0, fmt.Errorf("пустое количество %q", s)
	}
	for _, r := range t {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("некорректное количество %q", s)
		}
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("некорректное количество %q", s)
	}
	return n, nil
}
