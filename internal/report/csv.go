package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"datahealth_api/internal/quality"
)

// WriteIssuesCSV exports all detected issues as UTF-8 CSV.
func WriteIssuesCSV(w io.Writer, run *quality.CheckRun) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"data_type", "field", "description", "impact"}); err != nil {
		return fmt.Errorf("writing issues header: %w", err)
	}
	for _, t := range sortedTypes(run.Reports) {
		for _, issue := range run.Reports[t].Issues {
			record := []string{t.Label(), issue.Field, issue.Description, string(issue.Impact)}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("writing issue row: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteRecommendationsCSV exports all recommendations as UTF-8 CSV.
func WriteRecommendationsCSV(w io.Writer, run *quality.CheckRun) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"data_type", "issue", "recommendation", "priority"}); err != nil {
		return fmt.Errorf("writing recommendations header: %w", err)
	}
	for _, t := range sortedTypes(run.Reports) {
		for _, rec := range run.Reports[t].Recommendations {
			record := []string{t.Label(), rec.Issue, rec.Recommendation, string(rec.Priority)}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("writing recommendation row: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSummaryCSV exports one row per data type with all dimension
// scores and the overall score.
func WriteSummaryCSV(w io.Writer, run *quality.CheckRun) error {
	writer := csv.NewWriter(w)

	header := []string{"data_type", "records"}
	for _, dim := range quality.AllDimensions() {
		header = append(header, string(dim))
	}
	header = append(header, "overall", "issues")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}

	for _, t := range sortedTypes(run.Reports) {
		report := run.Reports[t]
		record := []string{t.Label(), fmt.Sprintf("%d", report.Records)}
		for _, dim := range quality.AllDimensions() {
			record = append(record, fmt.Sprintf("%.1f", report.Scores[dim]))
		}
		record = append(record, fmt.Sprintf("%.2f", report.Overall), fmt.Sprintf("%d", len(report.Issues)))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteLegacyCSV wraps one of the CSV writers with a Windows-1251
// encoder with semicolon separators, for older desktop tooling that
// expects that format.
func WriteLegacyCSV(w io.Writer, run *quality.CheckRun, write func(io.Writer, *quality.CheckRun) error) error {
	encoder := transform.NewWriter(w, charmap.Windows1251.NewEncoder())
	if err := write(&semicolonWriter{w: encoder}, run); err != nil {
		return err
	}
	return encoder.Close()
}

// semicolonWriter rewrites the comma separators produced by
// encoding/csv. The exported values never contain commas themselves,
// fields with commas are quoted by the csv writer and left untouched.
type semicolonWriter struct {
	w        io.Writer
	inQuotes bool
}

func (s *semicolonWriter) Write(p []byte) (int, error) {
	out := make([]byte, len(p))
	for i, b := range p {
		switch {
		case b == '"':
			s.inQuotes = !s.inQuotes
			out[i] = b
		case b == ',' && !s.inQuotes:
			out[i] = ';'
		default:
			out[i] = b
		}
	}
	if _, err := s.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
