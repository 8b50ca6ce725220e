package catalog

// Product — позиция ассортимента. Row адресует строку листа,
// в которой хранится остаток.
type Product struct {
	Name string
	Row  int
}

// Category — подкатегория с товарами в порядке листа.
type Category struct {
	Name     string
	Products []Product
}

// Type — тип товара (Жидкости, Картриджи, ...).
type Type struct {
	Name       string
	Categories []Category
}

// Catalog — дерево тип → подкатегория → товары. Порядок на всех
// уровнях повторяет порядок исходного листа и значим для меню.
type Catalog struct {
	Types []Type
}

// Row — содержимое одной строки остатков.
type Row struct {
	Name  string
	Stock int
}

// TypeByName возвращает тип товара по имени.
func (c Catalog) TypeByName(name string) (Type, bool) {
	for _, t := range c.Types {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}

// CategoryByName возвращает подкатегорию внутри типа.
func (c Catalog) CategoryByName(typeName, catName string) (Category, bool) {
	t, ok := c.TypeByName(typeName)
	if !ok {
		return Category{}, false
	}
	for _, cat := range t.Categories {
		if cat.Name == catName {
			return cat, true
		}
	}
	return Category{}, false
}
