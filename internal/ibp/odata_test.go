package ibp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahealth_api/internal/masterdata/models"
)

func TestParseEnvelopeV2Results(t *testing.T) {
	body := []byte(`{"d":{"results":[
		{"ProductID":"P1","__metadata":{"uri":"x"},"Price":"12.50"},
		{"ProductID":"P2","Price":"7.00"}
	]}}`)

	records, err := parseEnvelope(body)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "P1", records[0]["ProductID"])
	assert.NotContains(t, records[0], "__metadata")
}

func TestParseEnvelopeV4Value(t *testing.T) {
	body := []byte(`{"value":[
		{"LocationID":"L1","@odata.etag":"abc","Latitude":53.55}
	]}`)

	records, err := parseEnvelope(body)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "L1", records[0]["LocationID"])
	assert.NotContains(t, records[0], "@odata.etag")
}

func TestParseEnvelopeRejectsUnknownShape(t *testing.T) {
	_, err := parseEnvelope([]byte(`{"items":[]}`))
	assert.Error(t, err)

	_, err = parseEnvelope([]byte(`not json`))
	assert.Error(t, err)
}

func TestPropertyName(t *testing.T) {
	assert.Equal(t, "ProductID", propertyName("product_id"))
	assert.Equal(t, "GrossWeight", propertyName("gross_weight"))
	assert.Equal(t, "PrimaryLocationID", propertyName("primary_location_id"))
	assert.Equal(t, "Active", propertyName("active"))
}

func TestCellValueNumeric(t *testing.T) {
	assert.InDelta(t, 12.5, cellValue(models.KindNumeric, 12.5).Number(), 0.001)
	assert.InDelta(t, 12.5, cellValue(models.KindNumeric, "12.50").Number(), 0.001)
	assert.True(t, cellValue(models.KindNumeric, "abc").IsNull())
	assert.True(t, cellValue(models.KindNumeric, nil).IsNull())
}

func TestCellValueBool(t *testing.T) {
	assert.True(t, cellValue(models.KindBool, true).Bool())
	assert.True(t, cellValue(models.KindBool, "true").Bool())
	assert.False(t, cellValue(models.KindBool, "false").Bool())
	assert.True(t, cellValue(models.KindBool, "maybe").IsNull())
}

func TestCellValueTimestamp(t *testing.T) {
	legacy := cellValue(models.KindTimestamp, "/Date(1700000000000)/")
	require.False(t, legacy.IsNull())
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), legacy.Time())

	iso := cellValue(models.KindTimestamp, "2026-01-15T12:00:00Z")
	require.False(t, iso.IsNull())
	assert.Equal(t, 2026, iso.Time().Year())

	dateOnly := cellValue(models.KindTimestamp, "2026-01-15")
	require.False(t, dateOnly.IsNull())

	assert.True(t, cellValue(models.KindTimestamp, "garbage").IsNull())
}

func TestCellValueText(t *testing.T) {
	assert.Equal(t, "FG", cellValue(models.KindText, "FG").Text())
	assert.True(t, cellValue(models.KindText, "   ").IsNull())
	assert.True(t, cellValue(models.KindText, nil).IsNull())
}
