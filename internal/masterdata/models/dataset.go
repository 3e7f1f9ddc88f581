package models

import (
	"fmt"
	"strings"
)

// Dataset is one loaded master data table: a fixed column layout and a
// list of rows with nullable cells.
type Dataset struct {
	Type    DataType
	Columns []Column
	Rows    [][]Value

	index map[string]int
}

func NewDataset(t DataType, columns []Column) *Dataset {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col.Name] = i
	}
	return &Dataset{
		Type:    t,
		Columns: columns,
		index:   index,
	}
}

// AppendRow adds a row. The cell count must match the column layout.
func (d *Dataset) AppendRow(cells []Value) error {
	if len(cells) != len(d.Columns) {
		return fmt.Errorf("row has %d cells, dataset %q has %d columns", len(cells), d.Type, len(d.Columns))
	}
	d.Rows = append(d.Rows, cells)
	return nil
}

func (d *Dataset) ColumnIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Cell returns the cell at (row, column), or a null value when the
// column does not exist.
func (d *Dataset) Cell(row int, column string) Value {
	i, ok := d.index[column]
	if !ok || row < 0 || row >= len(d.Rows) {
		return NullValue()
	}
	return d.Rows[row][i]
}

func (d *Dataset) RecordCount() int {
	return len(d.Rows)
}

func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

func (d *Dataset) TotalCells() int {
	return len(d.Rows) * len(d.Columns)
}

func (d *Dataset) NullCells() int {
	total := 0
	for _, row := range d.Rows {
		for _, cell := range row {
			if cell.IsNull() {
				total++
			}
		}
	}
	return total
}

// NullsByColumn counts null cells per column name.
func (d *Dataset) NullsByColumn() map[string]int {
	counts := make(map[string]int, len(d.Columns))
	for _, row := range d.Rows {
		for i, cell := range row {
			if cell.IsNull() {
				counts[d.Columns[i].Name]++
			}
		}
	}
	return counts
}

// KeyColumns returns the declared key fields present in this dataset.
// When none of the declared keys exist it falls back to the first
// column whose name suggests an identifier.
func (d *Dataset) KeyColumns() []string {
	var present []string
	for _, key := range d.Type.KeyColumns() {
		if _, ok := d.index[key]; ok {
			present = append(present, key)
		}
	}
	if len(present) > 0 {
		return present
	}
	for _, col := range d.Columns {
		lower := strings.ToLower(col.Name)
		if strings.Contains(lower, "id") || strings.Contains(lower, "code") || strings.Contains(lower, "key") {
			return []string{col.Name}
		}
	}
	return nil
}
