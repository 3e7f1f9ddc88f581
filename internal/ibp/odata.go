package ibp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"datahealth_api/internal/masterdata/models"
)

// parseEnvelope extracts the record list from an OData response body.
// Both the v2 envelope (d.results or d) and the v4 envelope (value)
// are accepted. Metadata keys are dropped.
func parseEnvelope(body []byte) ([]map[string]interface{}, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding odata envelope: %w", err)
	}

	var raw json.RawMessage
	if d, ok := envelope["d"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(d, &inner); err == nil {
			if results, ok := inner["results"]; ok {
				raw = results
			}
		}
		if raw == nil {
			raw = d
		}
	} else if value, ok := envelope["value"]; ok {
		raw = value
	} else {
		return nil, fmt.Errorf("odata response has neither d nor value")
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding odata records: %w", err)
	}

	for _, record := range records {
		for key := range record {
			if strings.HasPrefix(key, "__") || strings.Contains(key, "@odata") {
				delete(record, key)
			}
		}
	}
	return records, nil
}

// propertyName maps a snake_case column to its OData property,
// product_id becomes ProductID.
func propertyName(column string) string {
	parts := strings.Split(column, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if p == "id" {
			parts[i] = "ID"
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// cellValue converts one raw OData property into a typed cell.
// Numbers arrive either as JSON numbers or as decimal strings,
// timestamps as ISO 8601 or the legacy /Date(ms)/ form.
func cellValue(kind models.ColumnKind, raw interface{}) models.Value {
	if raw == nil {
		return models.NullValue()
	}

	switch kind {
	case models.KindNumeric:
		switch v := raw.(type) {
		case float64:
			return models.NumberValue(v)
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return models.NullValue()
			}
			return models.NumberValue(f)
		}
		return models.NullValue()

	case models.KindBool:
		switch v := raw.(type) {
		case bool:
			return models.BoolValue(v)
		case string:
			b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
			if err != nil {
				return models.NullValue()
			}
			return models.BoolValue(b)
		}
		return models.NullValue()

	case models.KindTimestamp:
		s, ok := raw.(string)
		if !ok {
			return models.NullValue()
		}
		if t, ok := parseLegacyDate(s); ok {
			return models.TimeValue(t)
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return models.TimeValue(t)
			}
		}
		return models.NullValue()

	default:
		s, ok := raw.(string)
		if !ok {
			return models.NullValue()
		}
		if strings.TrimSpace(s) == "" {
			return models.NullValue()
		}
		return models.TextValue(s)
	}
}

// parseLegacyDate handles the OData v2 "/Date(1700000000000)/" form.
func parseLegacyDate(s string) (time.Time, bool) {
	if !strings.HasPrefix(s, "/Date(") || !strings.HasSuffix(s, ")/") {
		return time.Time{}, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "/Date("), ")/")
	if plus := strings.IndexAny(inner, "+-"); plus > 0 {
		inner = inner[:plus]
	}
	ms, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
