package quality

import (
	"fmt"

	"datahealth_api/internal/masterdata/models"
)

// Recommendation is an actionable suggestion derived from a low
// dimension score.
type Recommendation struct {
	DataType       models.DataType `json:"data_type"`
	Issue          string          `json:"issue"`
	Recommendation string          `json:"recommendation"`
	Priority       Impact          `json:"priority"`
}

// Score floors below which a dimension triggers a recommendation.
const (
	recommendCompletenessBelow = 90
	recommendConsistencyBelow  = 90
	recommendValidityBelow     = 90
	recommendUniquenessBelow   = 95
	recommendTimelinessBelow   = 85
	highPriorityBelow          = 75
)

// Recommend derives suggestions from the dimension scores of one
// dataset.
func (a *Analyzer) Recommend(t models.DataType, scores map[Dimension]float64) []Recommendation {
	var recs []Recommendation

	add := func(dim Dimension, score float64, issue, action string) {
		priority := ImpactMedium
		if score < highPriorityBelow {
			priority = ImpactHigh
		}
		recs = append(recs, Recommendation{
			DataType:       t,
			Issue:          fmt.Sprintf("%s (%s score %.1f)", issue, dim, score),
			Recommendation: action,
			Priority:       priority,
		})
	}

	if s := scores[Completeness]; s < recommendCompletenessBelow {
		add(Completeness, s, "Records with missing attribute values",
			"Run a field completion campaign with the data owners and make the affected attributes mandatory at entry")
	}
	if s := scores[Consistency]; s < recommendConsistencyBelow {
		add(Consistency, s, "Inconsistent formats and references",
			"Publish naming and format conventions and add entry validations for cross references")
	}
	if s := scores[Validity]; s < recommendValidityBelow {
		add(Validity, s, "Values outside accepted code sets and ranges",
			"Restrict the affected fields to the accepted value lists and valid ranges")
	}
	if s := scores[Uniqueness]; s < recommendUniquenessBelow {
		add(Uniqueness, s, "Duplicate key values",
			"Deduplicate the records and enforce a unique key constraint in the source system")
	}
	if s := scores[Timeliness]; s < recommendTimelinessBelow {
		add(Timeliness, s, "Stale records beyond the freshness window",
			"Schedule periodic review cycles for records not touched within the freshness window")
	}

	return recs
}
