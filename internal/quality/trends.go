package quality

import (
	"time"

	"datahealth_api/internal/masterdata/models"
)

// TrendPoint is one historical score for a data type. Dimensions is
// filled when the point comes from a stored snapshot.
type TrendPoint struct {
	TakenAt    time.Time             `json:"taken_at"`
	Overall    float64               `json:"overall"`
	Dimensions map[Dimension]float64 `json:"dimensions,omitempty"`
}

// TrendSummary describes how the overall score moved across a window.
type TrendSummary struct {
	DataType  models.DataType `json:"data_type"`
	Points    []TrendPoint    `json:"points"`
	First     float64         `json:"first"`
	Last      float64         `json:"last"`
	Change    float64         `json:"change"`
	ChangePct float64         `json:"change_pct"`
	Direction string          `json:"direction"`
	Message   string          `json:"message,omitempty"`
}

// Summarize condenses a score series into a trend. Fewer than two
// points cannot show a direction.
func Summarize(t models.DataType, points []TrendPoint) TrendSummary {
	summary := TrendSummary{DataType: t, Points: points}
	if len(points) < 2 {
		summary.Direction = "insufficient data"
		summary.Message = "insufficient data for a trend"
		if len(points) == 1 {
			summary.First = points[0].Overall
			summary.Last = points[0].Overall
		}
		return summary
	}

	summary.First = points[0].Overall
	summary.Last = points[len(points)-1].Overall
	summary.Change = summary.Last - summary.First
	if summary.First != 0 {
		summary.ChangePct = 100 * summary.Change / summary.First
	}

	switch {
	case summary.Change > 0.05:
		summary.Direction = "increased"
	case summary.Change < -0.05:
		summary.Direction = "decreased"
	default:
		summary.Direction = "unchanged"
	}
	return summary
}
