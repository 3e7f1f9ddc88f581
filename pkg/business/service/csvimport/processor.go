package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"datahealth_api/internal/masterdata/models"
)

// Processor reads a legacy master data export and shapes it into the
// standard column layout. The exports are Windows-1251 encoded with
// semicolon separators, columns are matched by header name with an
// optional renaming map for exports that use legacy field names.
type Processor struct {
	dataType models.DataType
	renaming map[string]string
}

func NewProcessor(t models.DataType) *Processor {
	return &Processor{
		dataType: t,
		renaming: map[string]string{},
	}
}

// SetRenaming maps legacy header names onto standard column names.
func (p *Processor) SetRenaming(renaming map[string]string) *Processor {
	if len(renaming) == 0 {
		return p
	}
	p.renaming = renaming
	return p
}

// ProcessCSV decodes the export and returns a dataset. Cells that fail
// to parse for their column kind become nulls, the analyzer reports
// them as missing instead of the import aborting.
func (p *Processor) ProcessCSV(reader io.Reader) (*models.Dataset, error) {
	decoder := transform.NewReader(reader, charmap.Windows1251.NewDecoder())
	csvReader := csv.NewReader(decoder)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("csv data is empty")
	}

	columns := models.Schema(p.dataType)
	if columns == nil {
		return nil, fmt.Errorf("no schema for data type %q", p.dataType)
	}

	header := allRows[0]
	data := allRows[1:]

	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if renamed, ok := p.renaming[normalized]; ok {
			normalized = renamed
		}
		columnMap[normalized] = i
	}

	ds := models.NewDataset(p.dataType, columns)
	for _, row := range data {
		cells := make([]models.Value, len(columns))
		for i, col := range columns {
			idx, ok := columnMap[col.Name]
			if !ok || idx >= len(row) {
				cells[i] = models.NullValue()
				continue
			}
			cells[i] = convertCell(col.Kind, row[idx])
		}
		if err := ds.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func convertCell(kind models.ColumnKind, cell string) models.Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return models.NullValue()
	}

	switch kind {
	case models.KindNumeric:
		// Legacy exports use a decimal comma.
		f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
		if err != nil {
			return models.NullValue()
		}
		return models.NumberValue(f)

	case models.KindBool:
		switch strings.ToLower(cell) {
		case "1", "true", "x", "yes", "y":
			return models.BoolValue(true)
		case "0", "false", "no", "n", "-":
			return models.BoolValue(false)
		}
		return models.NullValue()

	case models.KindTimestamp:
		for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", "02.01.2006 15:04:05", "02.01.2006"} {
			if t, err := time.Parse(layout, cell); err == nil {
				return models.TimeValue(t)
			}
		}
		return models.NullValue()

	default:
		return models.TextValue(cell)
	}
}
