package quality

import (
	"time"

	"github.com/google/uuid"

	"datahealth_api/config/values"
	"datahealth_api/internal/masterdata/models"
)

// Dimension names one scored aspect of data quality.
type Dimension string

const (
	Completeness Dimension = "completeness"
	Consistency  Dimension = "consistency"
	Validity     Dimension = "validity"
	Uniqueness   Dimension = "uniqueness"
	Timeliness   Dimension = "timeliness"
	Accuracy     Dimension = "accuracy"
)

func AllDimensions() []Dimension {
	return []Dimension{Completeness, Consistency, Validity, Uniqueness, Timeliness, Accuracy}
}

// DatasetReport is the scored result for one dataset: per dimension
// scores on a 0-100 scale, the weighted overall score on a 0-10 scale
// and the detected issues.
type DatasetReport struct {
	DataType        models.DataType       `json:"data_type"`
	Records         int                   `json:"records"`
	Scores          map[Dimension]float64 `json:"scores"`
	Overall         float64               `json:"overall"`
	Issues          []Issue               `json:"issues"`
	Recommendations []Recommendation      `json:"recommendations"`
}

// CheckRun groups the reports of one analyzer pass over all datasets.
type CheckRun struct {
	ID      string                             `json:"id"`
	TakenAt time.Time                          `json:"taken_at"`
	Reports map[models.DataType]*DatasetReport `json:"reports"`
}

// AverageOverall is the mean of the per-type overall scores.
func (r *CheckRun) AverageOverall() float64 {
	if len(r.Reports) == 0 {
		return 0
	}
	sum := 0.0
	for _, report := range r.Reports {
		sum += report.Overall
	}
	return sum / float64(len(r.Reports))
}

// Analyzer scores datasets against the configured weights, valid value
// sets and thresholds.
type Analyzer struct {
	values values.AnalyzerValues
	now    func() time.Time
}

func NewAnalyzer(v values.AnalyzerValues) *Analyzer {
	return &Analyzer{values: v, now: time.Now}
}

// Analyze scores every dataset and stamps the run with an id and time.
func (a *Analyzer) Analyze(datasets map[models.DataType]*models.Dataset) *CheckRun {
	run := &CheckRun{
		ID:      uuid.NewString(),
		TakenAt: a.now().UTC(),
		Reports: make(map[models.DataType]*DatasetReport, len(datasets)),
	}
	for t, ds := range datasets {
		run.Reports[t] = a.AnalyzeDataset(ds)
	}
	return run
}

// AnalyzeDataset scores a single dataset across all dimensions. A
// dataset with no records scores zero everywhere and reports a single
// high impact issue instead of the per-dimension fallbacks.
func (a *Analyzer) AnalyzeDataset(ds *models.Dataset) *DatasetReport {
	if ds.RecordCount() == 0 {
		scores := map[Dimension]float64{}
		for _, dim := range AllDimensions() {
			scores[dim] = 0
		}
		return &DatasetReport{
			DataType: ds.Type,
			Scores:   scores,
			Issues: []Issue{{
				Field:       "dataset",
				Description: "No data available",
				Impact:      ImpactHigh,
			}},
		}
	}

	scores := map[Dimension]float64{}
	scores[Completeness] = a.completeness(ds)
	scores[Consistency] = a.consistency(ds)
	scores[Validity] = a.validity(ds)
	scores[Uniqueness] = a.uniqueness(ds)
	scores[Timeliness] = a.timeliness(ds)
	scores[Accuracy] = a.accuracy(ds, scores[Completeness], scores[Consistency], scores[Validity])

	report := &DatasetReport{
		DataType: ds.Type,
		Records:  ds.RecordCount(),
		Scores:   scores,
		Overall:  a.OverallScore(scores),
	}
	report.Issues = a.DetectIssues(ds, scores)
	report.Recommendations = a.Recommend(ds.Type, scores)
	return report
}

// OverallScore converts the weighted 0-100 dimension scores into a
// single 0-10 score.
func (a *Analyzer) OverallScore(scores map[Dimension]float64) float64 {
	w := a.values.Weights
	total := scores[Completeness]*w.Completeness +
		scores[Consistency]*w.Consistency +
		scores[Validity]*w.Validity +
		scores[Uniqueness]*w.Uniqueness +
		scores[Timeliness]*w.Timeliness +
		scores[Accuracy]*w.Accuracy

	overall := total / 10
	if overall > 10 {
		overall = 10
	}
	if overall < 0 {
		overall = 0
	}
	return overall
}
