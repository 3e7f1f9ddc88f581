package report

import (
	"fmt"
	"sort"

	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/quality"
)

// ChartConfig describes a renderable chart for the dashboard frontend.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TableData describes a renderable table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Align string `json:"align"`
}

type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// sortedTypes returns report keys in the canonical data type order,
// unknown types last.
func sortedTypes(reports map[models.DataType]*quality.DatasetReport) []models.DataType {
	known := make(map[models.DataType]bool)
	var types []models.DataType
	for _, t := range models.AllDataTypes() {
		if _, ok := reports[t]; ok {
			types = append(types, t)
			known[t] = true
		}
	}
	var extra []models.DataType
	for t := range reports {
		if !known[t] {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(types, extra...)
}

// ScoresBarChart renders the overall 0-10 score per data type.
func ScoresBarChart(run *quality.CheckRun) ChartConfig {
	series := ChartSeries{Name: "Overall score"}
	for _, t := range sortedTypes(run.Reports) {
		series.Data = append(series.Data, ChartPoint{
			Label: t.Label(),
			Value: round1(run.Reports[t].Overall),
		})
	}
	return ChartConfig{
		ChartType: "bar",
		Title:     "Master Data Health Scores",
		XAxis:     "Data Type",
		YAxis:     "Score (0-10)",
		Series:    []ChartSeries{series},
		ShowGrid:  true,
	}
}

// DimensionBarChart renders the six dimension scores for one data type.
func DimensionBarChart(report *quality.DatasetReport) ChartConfig {
	series := ChartSeries{Name: report.DataType.Label()}
	for _, dim := range quality.AllDimensions() {
		series.Data = append(series.Data, ChartPoint{
			Label: string(dim),
			Value: round1(report.Scores[dim]),
		})
	}
	return ChartConfig{
		ChartType: "bar",
		Title:     fmt.Sprintf("%s Quality Dimensions", report.DataType.Label()),
		XAxis:     "Dimension",
		YAxis:     "Score (0-100)",
		Series:    []ChartSeries{series},
		ShowGrid:  true,
	}
}

// TrendLineChart renders historical overall scores per data type.
func TrendLineChart(trends []quality.TrendSummary) ChartConfig {
	cfg := ChartConfig{
		ChartType:  "line",
		Title:      "Health Score Trend",
		XAxis:      "Time",
		YAxis:      "Score (0-10)",
		ShowLegend: true,
		ShowGrid:   true,
	}
	for _, trend := range trends {
		series := ChartSeries{Name: trend.DataType.Label()}
		for _, point := range trend.Points {
			series.Data = append(series.Data, ChartPoint{
				Label: point.TakenAt.Format("2006-01-02 15:04"),
				Value: round1(point.Overall),
			})
		}
		cfg.Series = append(cfg.Series, series)
	}
	return cfg
}

// OverviewTable renders one row per data type with record count,
// overall score and issue count.
func OverviewTable(run *quality.CheckRun) TableData {
	table := TableData{
		Title: "Master Data Overview",
		Columns: []Column{
			{Key: "data_type", Label: "Data Type", Type: "text", Align: "left"},
			{Key: "records", Label: "Records", Type: "number", Align: "right"},
			{Key: "overall", Label: "Score", Type: "number", Align: "right"},
			{Key: "issues", Label: "Issues", Type: "number", Align: "right"},
		},
	}

	totalRecords, totalIssues := 0, 0
	for _, t := range sortedTypes(run.Reports) {
		report := run.Reports[t]
		totalRecords += report.Records
		totalIssues += len(report.Issues)
		table.Rows = append(table.Rows, []string{
			t.Label(),
			fmt.Sprintf("%d", report.Records),
			fmt.Sprintf("%.1f", report.Overall),
			fmt.Sprintf("%d", len(report.Issues)),
		})
	}

	table.Summary = &Summary{
		Label: "Total",
		Values: map[string]string{
			"records": fmt.Sprintf("%d", totalRecords),
			"overall": fmt.Sprintf("%.1f", run.AverageOverall()),
			"issues":  fmt.Sprintf("%d", totalIssues),
		},
	}
	return table
}

// IssuesTable flattens all detected issues across data types.
func IssuesTable(run *quality.CheckRun) TableData {
	table := TableData{
		Title: "Detected Issues",
		Columns: []Column{
			{Key: "data_type", Label: "Data Type", Type: "text", Align: "left"},
			{Key: "field", Label: "Field", Type: "text", Align: "left"},
			{Key: "description", Label: "Description", Type: "text", Align: "left"},
			{Key: "impact", Label: "Impact", Type: "text", Align: "center"},
		},
	}
	for _, t := range sortedTypes(run.Reports) {
		for _, issue := range run.Reports[t].Issues {
			table.Rows = append(table.Rows, []string{
				t.Label(), issue.Field, issue.Description, string(issue.Impact),
			})
		}
	}
	return table
}

// RecommendationsTable flattens all recommendations, high priority
// first.
func RecommendationsTable(run *quality.CheckRun) TableData {
	table := TableData{
		Title: "Recommendations",
		Columns: []Column{
			{Key: "data_type", Label: "Data Type", Type: "text", Align: "left"},
			{Key: "issue", Label: "Issue", Type: "text", Align: "left"},
			{Key: "recommendation", Label: "Recommendation", Type: "text", Align: "left"},
			{Key: "priority", Label: "Priority", Type: "text", Align: "center"},
		},
	}

	var high, rest [][]string
	for _, t := range sortedTypes(run.Reports) {
		for _, rec := range run.Reports[t].Recommendations {
			row := []string{t.Label(), rec.Issue, rec.Recommendation, string(rec.Priority)}
			if rec.Priority == quality.ImpactHigh {
				high = append(high, row)
			} else {
				rest = append(rest, row)
			}
		}
	}
	table.Rows = append(high, rest...)
	return table
}

func round1(f float64) float64 {
	return float64(int64(f*10+0.5)) / 10
}
