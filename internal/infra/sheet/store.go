package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vprudnikov/tablitsa-bot/internal/domain/catalog"
)

// Колонки листа: A — название, B — объём (признак товарной строки),
// C — остаток текстом «N шт».
const (
	colName   = 1
	colVolume = 2
	colStock  = 3
)

// Заливки маркера остатка.
const (
	fillZero    = "FF0000" // красный: «0 шт»
	fillNonZero = "C6E0B4" // зелёный (Accent6, +40%)
)

// Marker — двухпозиционный визуальный маркер ячейки остатка.
type Marker string

const (
	MarkerZero    Marker = "zero"
	MarkerNonZero Marker = "non-zero"
)

// Block — маркерная строка листа, открывающая подкатегорию.
type Block struct {
	Header string // значение в колонке A
	Title  string // имя подкатегории; пусто — берём Header
	Type   string // тип товара, к которому блок относится
}

// Store читает и пишет лист ассортимента. Контракт: никакого кэша,
// каждый вызов открывает файл заново.
type Store struct {
	path     string
	sheet    string
	startRow int // первая строка данных, отсюда начинается диапазон условного форматирования
	blocks   []Block
}

func New(path, sheetName string, startRow int, blocks []Block) *Store {
	if startRow <= 0 {
		startRow = 1
	}
	return &Store{path: path, sheet: sheetName, startRow: startRow, blocks: blocks}
}

func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("открытие файла %s: %w", s.path, err)
	}
	return f, nil
}

func (s *Store) blockFor(name string) *Block {
	for i := range s.blocks {
		if s.blocks[i].Header == name {
			return &s.blocks[i]
		}
	}
	return nil
}

// Catalog сканирует лист и строит дерево тип → подкатегория → товары.
// Строка-заголовок блока открывает подкатегорию; товарная строка —
// та, где заполнены все три колонки. Порядок повторяет лист.
func (s *Store) Catalog(_ context.Context) (catalog.Catalog, error) {
	f, err := s.open()
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("чтение листа %s: %w", s.sheet, err)
	}

	var c catalog.Catalog
	typeIdx := make(map[string]int)
	for _, b := range s.blocks {
		if _, ok := typeIdx[b.Type]; !ok {
			typeIdx[b.Type] = len(c.Types)
			c.Types = append(c.Types, catalog.Type{Name: b.Type})
		}
	}

	curType, curCat := -1, -1
	for i, row := range rows {
		name := cellAt(row, colName)
		vol := cellAt(row, colVolume)
		stock := cellAt(row, colStock)

		if blk := s.blockFor(name); blk != nil {
			title := blk.Title
			if title == "" {
				title = name
			}
			curType = typeIdx[blk.Type]
			c.Types[curType].Categories = append(c.Types[curType].Categories, catalog.Category{Name: title})
			curCat = len(c.Types[curType].Categories) - 1
			continue
		}
		if name != "" && vol != "" && stock != "" && curCat >= 0 {
			cat := &c.Types[curType].Categories[curCat]
			cat.Products = append(cat.Products, catalog.Product{Name: name, Row: i + 1})
		}
	}
	return c, nil
}

// ReadRow читает название и остаток одной строки. Пустая ячейка
// остатка читается как ноль.
func (s *Store) ReadRow(_ context.Context, row int) (catalog.Row, error) {
	f, err := s.open()
	if err != nil {
		return catalog.Row{}, err
	}
	defer func() { _ = f.Close() }()

	name, err := s.cellValue(f, colName, row)
	if err != nil {
		return catalog.Row{}, err
	}
	if name == "" {
		return catalog.Row{}, fmt.Errorf("строка %d: товар не найден", row)
	}
	stockTxt, err := s.cellValue(f, colStock, row)
	if err != nil {
		return catalog.Row{}, err
	}
	stock := 0
	if strings.TrimSpace(stockTxt) != "" {
		stock, err = catalog.ParseQuantity(stockTxt)
		if err != nil {
			return catalog.Row{}, fmt.Errorf("строка %d: %w", row, err)
		}
	}
	return catalog.Row{Name: name, Stock: stock}, nil
}

// WriteStock пишет остаток текстом «N шт», ставит заливку маркера
// (красная при нуле, иначе зелёная), обновляет правила условного
// форматирования колонки остатков и сохраняет файл.
func (s *Store) WriteStock(_ context.Context, row, qty int) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	cell, err := excelize.CoordinatesToCellName(colStock, row)
	if err != nil {
		return fmt.Errorf("адрес ячейки: %w", err)
	}
	if err := f.SetCellValue(s.sheet, cell, catalog.FormatQuantity(qty)); err != nil {
		return fmt.Errorf("запись остатка: %w", err)
	}

	color := fillNonZero
	if qty == 0 {
		color = fillZero
	}
	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return fmt.Errorf("стиль заливки: %w", err)
	}
	if err := f.SetCellStyle(s.sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("заливка ячейки: %w", err)
	}

	if err := s.applyConditionalFormatting(f); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("сохранение файла: %w", err)
	}
	return nil
}

// Marker возвращает текущий визуальный маркер ячейки остатка.
func (s *Store) Marker(_ context.Context, row int) (Marker, error) {
	f, err := s.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	cell, err := excelize.CoordinatesToCellName(colStock, row)
	if err != nil {
		return "", fmt.Errorf("адрес ячейки: %w", err)
	}
	styleID, err := f.GetCellStyle(s.sheet, cell)
	if err != nil {
		return "", fmt.Errorf("стиль ячейки: %w", err)
	}
	st, err := f.GetStyle(styleID)
	if err != nil {
		return "", fmt.Errorf("чтение стиля: %w", err)
	}
	if len(st.Fill.Color) == 0 {
		return "", fmt.Errorf("строка %d: маркер не установлен", row)
	}
	color := strings.ToUpper(st.Fill.Color[0])
	if len(color) == 8 { // ARGB → RGB
		color = color[2:]
	}
	switch color {
	case fillZero:
		return MarkerZero, nil
	case fillNonZero:
		return MarkerNonZero, nil
	}
	return "", fmt.Errorf("строка %d: неизвестная заливка %s", row, st.Fill.Color[0])
}

// Два взаимоисключающих правила на колонку остатков: «0 шт» —
// красный, всё остальное — зелёный. Переустанавливаются при каждой
// записи, чтобы не накапливались дубли.
func (s *Store) applyConditionalFormatting(f *excelize.File) error {
	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("чтение листа %s: %w", s.sheet, err)
	}
	last := len(rows)
	if last < s.startRow {
		last = s.startRow
	}
	rng := fmt.Sprintf("C%d:C%d", s.startRow, last)

	red, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillZero}},
	})
	if err != nil {
		return fmt.Errorf("условный стиль: %w", err)
	}
	green, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillNonZero}},
	})
	if err != nil {
		return fmt.Errorf("условный стиль: %w", err)
	}

	_ = f.UnsetConditionalFormat(s.sheet, rng)
	zero := fmt.Sprintf("%q", catalog.FormatQuantity(0))
	return f.SetConditionalFormat(s.sheet, rng, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "equal to", Value: zero, Format: &red},
		{Type: "cell", Criteria: "not equal to", Value: zero, Format: &green},
	})
}

func (s *Store) cellValue(f *excelize.File, col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("адрес ячейки: %w", err)
	}
	v, err := f.GetCellValue(s.sheet, cell)
	if err != nil {
		return "", fmt.Errorf("чтение ячейки %s: %w", cell, err)
	}
	return v, nil
}

func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return strings.TrimSpace(row[col-1])
	}
	return ""
}
