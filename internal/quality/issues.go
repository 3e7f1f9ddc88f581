package quality

import (
	"fmt"
	"sort"
	"strings"

	"datahealth_api/internal/masterdata/models"
)

type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

func ParseImpact(s string) (Impact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ImpactHigh, nil
	case "medium":
		return ImpactMedium, nil
	case "low":
		return ImpactLow, nil
	}
	return "", fmt.Errorf("unknown impact %q", s)
}

// Issue is one concrete finding inside a dataset.
type Issue struct {
	Field       string `json:"field"`
	Description string `json:"description"`
	Impact      Impact `json:"impact"`
}

// DetectIssues reports missing field concentrations, duplicate keys and
// stale records for a dataset.
func (a *Analyzer) DetectIssues(ds *models.Dataset, scores map[Dimension]float64) []Issue {
	var issues []Issue

	if ds.RecordCount() > 0 {
		nulls := ds.NullsByColumn()
		columns := make([]string, 0, len(nulls))
		for col := range nulls {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		for _, col := range columns {
			pct := 100 * float64(nulls[col]) / float64(ds.RecordCount())
			if pct <= a.values.Thresholds.MissingFieldPct {
				continue
			}
			impact := ImpactMedium
			if pct > a.values.Thresholds.HighImpactPct {
				impact = ImpactHigh
			}
			issues = append(issues, Issue{
				Field:       col,
				Description: fmt.Sprintf("%.1f%% of records are missing %s", pct, col),
				Impact:      impact,
			})
		}
	}

	if uniq := scores[Uniqueness]; uniq < 100 && len(ds.KeyColumns()) > 0 {
		dupes := int(float64(ds.RecordCount()) * (100 - uniq) / 100)
		if dupes > 0 {
			impact := ImpactMedium
			if uniq < 90 {
				impact = ImpactHigh
			}
			issues = append(issues, Issue{
				Field:       ds.KeyColumns()[0],
				Description: fmt.Sprintf("%d duplicate key values detected", dupes),
				Impact:      impact,
			})
		}
	}

	if timely := scores[Timeliness]; timely < 80 {
		issues = append(issues, Issue{
			Field:       "last_updated",
			Description: fmt.Sprintf("%.1f%% of records are older than %d days", 100-timely, a.values.Thresholds.StaleAfterDays),
			Impact:      ImpactMedium,
		})
	}

	return issues
}
