package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/quality"
)

func testRun() *quality.CheckRun {
	return &quality.CheckRun{
		ID:      "run-1",
		TakenAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Reports: map[models.DataType]*quality.DatasetReport{
			models.Locations: {
				DataType: models.Locations,
				Records:  100,
				Overall:  8.4,
				Scores: map[quality.Dimension]float64{
					quality.Completeness: 92, quality.Consistency: 88, quality.Validity: 95,
					quality.Uniqueness: 100, quality.Timeliness: 75, quality.Accuracy: 90,
				},
				Issues: []quality.Issue{
					{Field: "region", Description: "15.0% of records are missing region", Impact: quality.ImpactMedium},
				},
				Recommendations: []quality.Recommendation{
					{DataType: models.Locations, Issue: "stale", Recommendation: "review", Priority: quality.ImpactMedium},
				},
			},
			models.Products: {
				DataType: models.Products,
				Records:  200,
				Overall:  6.1,
				Scores: map[quality.Dimension]float64{
					quality.Completeness: 80, quality.Consistency: 70, quality.Validity: 65,
					quality.Uniqueness: 90, quality.Timeliness: 60, quality.Accuracy: 72,
				},
				Issues: []quality.Issue{
					{Field: "product_id", Description: "4 duplicate key values detected", Impact: quality.ImpactHigh},
					{Field: "price", Description: "10.0% of records are missing price", Impact: quality.ImpactMedium},
				},
				Recommendations: []quality.Recommendation{
					{DataType: models.Products, Issue: "duplicates", Recommendation: "dedupe", Priority: quality.ImpactHigh},
				},
			},
		},
	}
}

func TestScoresBarChart(t *testing.T) {
	chart := ScoresBarChart(testRun())

	assert.Equal(t, "bar", chart.ChartType)
	require.Len(t, chart.Series, 1)
	require.Len(t, chart.Series[0].Data, 2)

	// Canonical data type ordering: products before locations.
	assert.Equal(t, "Products", chart.Series[0].Data[0].Label)
	assert.InDelta(t, 6.1, chart.Series[0].Data[0].Value, 0.001)
	assert.Equal(t, "Locations", chart.Series[0].Data[1].Label)
}

func TestDimensionBarChart(t *testing.T) {
	run := testRun()
	chart := DimensionBarChart(run.Reports[models.Products])

	require.Len(t, chart.Series, 1)
	require.Len(t, chart.Series[0].Data, len(quality.AllDimensions()))
	assert.Equal(t, "completeness", chart.Series[0].Data[0].Label)
	assert.InDelta(t, 80, chart.Series[0].Data[0].Value, 0.001)
}

func TestOverviewTable(t *testing.T) {
	table := OverviewTable(testRun())

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Products", "200", "6.1", "2"}, table.Rows[0])
	assert.Equal(t, []string{"Locations", "100", "8.4", "1"}, table.Rows[1])

	require.NotNil(t, table.Summary)
	assert.Equal(t, "300", table.Summary.Values["records"])
	assert.Equal(t, "3", table.Summary.Values["issues"])
}

func TestIssuesTable(t *testing.T) {
	table := IssuesTable(testRun())
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Products", table.Rows[0][0])
	assert.Equal(t, "product_id", table.Rows[0][1])
}

func TestRecommendationsTableHighPriorityFirst(t *testing.T) {
	table := RecommendationsTable(testRun())
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "High", table.Rows[0][3])
	assert.Equal(t, "Medium", table.Rows[1][3])
}

func TestTrendLineChart(t *testing.T) {
	trends := []quality.TrendSummary{
		{
			DataType: models.Products,
			Points: []quality.TrendPoint{
				{TakenAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Overall: 6.0},
				{TakenAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), Overall: 6.5},
			},
		},
	}

	chart := TrendLineChart(trends)
	assert.Equal(t, "line", chart.ChartType)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "Products", chart.Series[0].Name)
	require.Len(t, chart.Series[0].Data, 2)
	assert.Equal(t, "2026-01-01 00:00", chart.Series[0].Data[0].Label)
}
