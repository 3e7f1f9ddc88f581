package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"datahealth_api/internal/masterdata/models"
)

func trendPoints(scores ...float64) []TrendPoint {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]TrendPoint, len(scores))
	for i, score := range scores {
		points[i] = TrendPoint{TakenAt: base.AddDate(0, 0, i), Overall: score}
	}
	return points
}

func TestSummarizeDirections(t *testing.T) {
	increased := Summarize(models.Products, trendPoints(6.0, 6.5, 7.2))
	assert.Equal(t, "increased", increased.Direction)
	assert.InDelta(t, 1.2, increased.Change, 0.001)
	assert.InDelta(t, 20, increased.ChangePct, 0.001)

	decreased := Summarize(models.Products, trendPoints(8.0, 7.0))
	assert.Equal(t, "decreased", decreased.Direction)
	assert.InDelta(t, -1.0, decreased.Change, 0.001)

	// Movement inside the 0.05 deadband does not count as a direction.
	unchanged := Summarize(models.Products, trendPoints(7.0, 7.02))
	assert.Equal(t, "unchanged", unchanged.Direction)
}

func TestSummarizeInsufficientData(t *testing.T) {
	empty := Summarize(models.Locations, nil)
	assert.Equal(t, "insufficient data", empty.Direction)
	assert.NotEmpty(t, empty.Message)

	single := Summarize(models.Locations, trendPoints(5.5))
	assert.Equal(t, "insufficient data", single.Direction)
	assert.NotEmpty(t, single.Message)
	assert.InDelta(t, 5.5, single.First, 0.001)
	assert.InDelta(t, 5.5, single.Last, 0.001)
	assert.Equal(t, 0.0, single.Change)
}
