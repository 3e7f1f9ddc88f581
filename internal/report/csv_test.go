package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestWriteIssuesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIssuesCSV(&buf, testRun()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"data_type", "field", "description", "impact"}, records[0])
	assert.Equal(t, "Products", records[1][0])
	assert.Equal(t, "High", records[1][3])
}

func TestWriteRecommendationsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecommendationsCSV(&buf, testRun()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "recommendation", records[0][2])
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, testRun()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "data_type", header[0])
	assert.Contains(t, header, "completeness")
	assert.Contains(t, header, "overall")

	assert.Equal(t, "Products", records[1][0])
	assert.Equal(t, "6.10", records[1][len(header)-2])
}

func TestWriteLegacyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLegacyCSV(&buf, testRun(), WriteIssuesCSV))

	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), buf.Bytes())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(decoded)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "data_type;field;description;impact", lines[0])
	assert.NotContains(t, lines[0], ",")
}
