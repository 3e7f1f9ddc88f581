package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	parsed, err := ParseDataType("Time Profiles")
	require.NoError(t, err)
	assert.Equal(t, TimeProfiles, parsed)

	parsed, err = ParseDataType("products")
	require.NoError(t, err)
	assert.Equal(t, Products, parsed)

	_, err = ParseDataType("orders")
	assert.Error(t, err)
}

func TestDataTypeLabel(t *testing.T) {
	assert.Equal(t, "Time Profiles", TimeProfiles.Label())
	assert.Equal(t, "Products", Products.Label())
}

func TestDatasetAppendRowLengthCheck(t *testing.T) {
	ds := NewDataset(Products, []Column{
		{Name: "product_id", Kind: KindText},
		{Name: "price", Kind: KindNumeric},
	})

	require.NoError(t, ds.AppendRow([]Value{TextValue("P1"), NumberValue(9.5)}))
	assert.Error(t, ds.AppendRow([]Value{TextValue("P2")}))
	assert.Equal(t, 1, ds.RecordCount())
}

func TestDatasetCellAndNullCounting(t *testing.T) {
	ds := NewDataset(Products, []Column{
		{Name: "product_id", Kind: KindText},
		{Name: "price", Kind: KindNumeric},
	})
	require.NoError(t, ds.AppendRow([]Value{TextValue("P1"), NullValue()}))
	require.NoError(t, ds.AppendRow([]Value{TextValue("P2"), NumberValue(3)}))

	assert.Equal(t, "P1", ds.Cell(0, "product_id").Text())
	assert.True(t, ds.Cell(0, "price").IsNull())
	assert.True(t, ds.Cell(0, "missing_column").IsNull())
	assert.True(t, ds.Cell(5, "product_id").IsNull())

	assert.Equal(t, 4, ds.TotalCells())
	assert.Equal(t, 1, ds.NullCells())
	assert.Equal(t, map[string]int{"price": 1}, ds.NullsByColumn())
}

func TestDatasetKeyColumns(t *testing.T) {
	ds := NewDataset(Products, Schema(Products))
	assert.Equal(t, []string{"product_id"}, ds.KeyColumns())

	// Fallback scan when the declared key is absent.
	ds = NewDataset(Products, []Column{
		{Name: "name", Kind: KindText},
		{Name: "material_code", Kind: KindText},
	})
	assert.Equal(t, []string{"material_code"}, ds.KeyColumns())

	ds = NewDataset(Products, []Column{{Name: "name", Kind: KindText}})
	assert.Empty(t, ds.KeyColumns())
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "", NullValue().Display())
	assert.Equal(t, "hello", TextValue("hello").Display())
	assert.Equal(t, "2.5", NumberValue(2.5).Display())
	assert.Equal(t, "true", BoolValue(true).Display())

	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01 09:30:00", TimeValue(ts).Display())
}

func TestValueDriver(t *testing.T) {
	assert.Nil(t, NullValue().Driver())
	assert.Equal(t, "x", TextValue("x").Driver())
	assert.Equal(t, 1.5, NumberValue(1.5).Driver())
	assert.Equal(t, true, BoolValue(true).Driver())
}

func TestSchemaCoversAllTypes(t *testing.T) {
	for _, dataType := range AllDataTypes() {
		columns := Schema(dataType)
		require.NotEmpty(t, columns, "schema missing for %s", dataType)

		names := map[string]bool{}
		for _, col := range columns {
			assert.False(t, names[col.Name], "duplicate column %s in %s", col.Name, dataType)
			names[col.Name] = true
		}

		for _, key := range dataType.KeyColumns() {
			assert.True(t, names[key], "key column %s missing from %s schema", key, dataType)
		}
		assert.True(t, names["last_updated"], "%s schema has no last_updated column", dataType)
	}
}
