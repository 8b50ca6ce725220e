package sheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testBlocks = []Block{
	{Header: "CLOUD HAVEN", Title: "Рик и Морти на замерзоне", Type: "Жидкости"},
	{Header: "Catswill", Type: "Жидкости"},
	{Header: "Расходники", Type: "Картриджи"},
}

// Лист в формате исходной таблицы: шапка, блоки-заголовки в колонке A,
// товарные строки с названием, объёмом и остатком.
func writeFixture(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assort.xlsx")

	f := excelize.NewFile()
	sheetName := f.GetSheetName(f.GetActiveSheetIndex())

	rows := map[int][]interface{}{
		1:  {"Асортимент"},
		4:  {"CLOUD HAVEN"},
		5:  {"Жидкость А", "30 мл", "5 шт"},
		6:  {"Жидкость Б", "30 мл", "0 шт"},
		7:  {"Catswill"},
		8:  {"Кот Лимон", "30 мл", "2 шт"},
		9:  {"Расходники"},
		10: {"Картридж 0.8", "0.8 ом", "7 шт"},
		11: {"Картридж 0.6", "0.6 ом", ""},
	}
	for r, vals := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cell, &vals))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	return New(path, sheetName, 4, testBlocks)
}

func TestCatalogStructureAndOrder(t *testing.T) {
	st := writeFixture(t)
	ctx := context.Background()

	c, err := st.Catalog(ctx)
	require.NoError(t, err)

	require.Len(t, c.Types, 2)
	assert.Equal(t, "Жидкости", c.Types[0].Name)
	assert.Equal(t, "Картриджи", c.Types[1].Name)

	liquids := c.Types[0]
	require.Len(t, liquids.Categories, 2)
	assert.Equal(t, "Рик и Морти на замерзоне", liquids.Categories[0].Name)
	assert.Equal(t, "Catswill", liquids.Categories[1].Name)

	rick := liquids.Categories[0]
	require.Len(t, rick.Products, 2)
	assert.Equal(t, "Жидкость А", rick.Products[0].Name)
	assert.Equal(t, 5, rick.Products[0].Row)
	assert.Equal(t, "Жидкость Б", rick.Products[1].Name)
	assert.Equal(t, 6, rick.Products[1].Row)

	carts := c.Types[1]
	require.Len(t, carts.Categories, 1)
	// строка без остатка — не товар
	require.Len(t, carts.Categories[0].Products, 1)
	assert.Equal(t, "Картридж 0.8", carts.Categories[0].Products[0].Name)
}

func TestCatalogLoadIsIdempotent(t *testing.T) {
	st := writeFixture(t)
	ctx := context.Background()

	first, err := st.Catalog(ctx)
	require.NoError(t, err)
	second, err := st.Catalog(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReadRow(t *testing.T) {
	st := writeFixture(t)
	ctx := context.Background()

	r, err := st.ReadRow(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Жидкость А", r.Name)
	assert.Equal(t, 5, r.Stock)

	// пустая ячейка остатка читается как ноль
	r, err = st.ReadRow(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Stock)

	_, err = st.ReadRow(ctx, 2)
	assert.Error(t, err)
}

func TestWriteStockRoundTrip(t *testing.T) {
	st := writeFixture(t)
	ctx := context.Background()

	require.NoError(t, st.WriteStock(ctx, 5, 3))

	r, err := st.ReadRow(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Stock)

	marker, err := st.Marker(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, MarkerNonZero, marker)
}

func TestWriteStockZeroMarker(t *testing.T) {
	st := writeFixture(t)
	ctx := context.Background()

	require.NoError(t, st.WriteStock(ctx, 6, 0))

	r, err := st.ReadRow(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Stock)

	marker, err := st.Marker(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, MarkerZero, marker)
}
