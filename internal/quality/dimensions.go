package quality

import (
	"math"
	"sort"
	"strings"

	"datahealth_api/internal/masterdata/models"
)

// Fallback scores used when a dataset carries no columns a dimension
// check can inspect. An absent check is treated as mostly healthy
// rather than failing the dataset outright.
const (
	defaultConsistency = 95
	defaultValidity    = 90
	defaultUniqueness  = 98
	noKeyUniqueness    = 90
	defaultTimeliness  = 85
	accuracyCap        = 95
)

// completeness is the share of non-null cells across the whole dataset.
func (a *Analyzer) completeness(ds *models.Dataset) float64 {
	total := ds.TotalCells()
	if total == 0 {
		return 0
	}
	filled := total - ds.NullCells()
	return 100 * float64(filled) / float64(total)
}

// consistency runs per-type format checks: naming conventions, weight
// ordering, reference integrity, phone formats and date ordering. Each
// applicable check contributes its pass rate, the final score is the
// mean over applicable checks.
func (a *Analyzer) consistency(ds *models.Dataset) float64 {
	var rates []float64

	switch ds.Type {
	case models.Products:
		rates = appendRate(rates, a.passRateText(ds, "product_name", mixedCase))
		rates = appendRate(rates, a.netBelowGrossRate(ds))
	case models.Locations:
		rates = appendRate(rates, a.passRateText(ds, "location_name", notAllLower))
		rates = appendRate(rates, a.referenceRate(ds, "parent_location", idSet(ds, "location_id")))
	case models.Customers:
		rates = appendRate(rates, a.passRateText(ds, "phone", wellFormedPhone))
	case models.TimeProfiles:
		rates = appendRate(rates, a.dateOrderRate(ds, "start_date", "end_date"))
	case models.Resources:
		rates = appendRate(rates, a.passRateText(ds, "resource_name", mixedCase))
	}

	if len(rates) == 0 {
		return defaultConsistency
	}
	return 100 * mean(rates)
}

// validity checks values against accepted code sets and ranges.
func (a *Analyzer) validity(ds *models.Dataset) float64 {
	var rates []float64

	switch ds.Type {
	case models.Products:
		rates = appendRate(rates, a.memberRate(ds, "product_category", a.values.ValidSets.ProductCategories))
		rates = appendRate(rates, a.memberRate(ds, "unit_of_measure", a.values.ValidSets.UnitsOfMeasure))
		rates = appendRate(rates, a.rangeRate(ds, "price", 0, math.Inf(1)))
	case models.Locations:
		rates = appendRate(rates, a.memberRate(ds, "location_type", a.values.ValidSets.LocationTypes))
	case models.Customers:
		rates = appendRate(rates, a.passRateText(ds, "email", wellFormedEmail))
	case models.Suppliers:
		rates = appendRate(rates, a.rangeRate(ds, "lead_time", 0, math.Inf(1)))
		rates = appendRate(rates, a.rangeRate(ds, "quality_rating", 0, 5))
	case models.TimeProfiles:
		rates = appendRate(rates, a.rangeRate(ds, "period_length", 1, math.Inf(1)))
	case models.Resources:
		rates = appendRate(rates, a.rangeRate(ds, "efficiency_rating", 0, 100))
	}

	if len(rates) == 0 {
		return defaultValidity
	}
	return 100 * mean(rates)
}

// uniqueness is the share of distinct key values among the rows.
func (a *Analyzer) uniqueness(ds *models.Dataset) float64 {
	keys := ds.KeyColumns()
	if len(keys) == 0 {
		return noKeyUniqueness
	}
	if ds.RecordCount() == 0 {
		return defaultUniqueness
	}

	seen := make(map[string]struct{}, ds.RecordCount())
	for i := 0; i < ds.RecordCount(); i++ {
		parts := make([]string, len(keys))
		for j, key := range keys {
			parts[j] = ds.Cell(i, key).Display()
		}
		seen[strings.Join(parts, "\x1f")] = struct{}{}
	}
	return 100 * float64(len(seen)) / float64(ds.RecordCount())
}

// timeliness is the share of records updated within the freshness
// window.
func (a *Analyzer) timeliness(ds *models.Dataset) float64 {
	if _, ok := ds.ColumnIndex("last_updated"); !ok {
		return defaultTimeliness
	}
	if ds.RecordCount() == 0 {
		return defaultTimeliness
	}

	cutoff := a.now().AddDate(0, 0, -a.values.Thresholds.StaleAfterDays)
	fresh := 0
	for i := 0; i < ds.RecordCount(); i++ {
		cell := ds.Cell(i, "last_updated")
		if !cell.IsNull() && !cell.Time().Before(cutoff) {
			fresh++
		}
	}
	return 100 * float64(fresh) / float64(ds.RecordCount())
}

// accuracy runs plausibility checks where the dataset has numeric
// columns to inspect, otherwise it derives a capped estimate from the
// other dimensions.
func (a *Analyzer) accuracy(ds *models.Dataset, completeness, consistency, validity float64) float64 {
	switch ds.Type {
	case models.Products:
		return a.numericPlausibility(ds, []string{"gross_weight", "net_weight", "shelf_life", "price"})
	case models.Locations:
		var rates []float64
		rates = appendRate(rates, a.rangeRate(ds, "latitude", -90, 90))
		rates = appendRate(rates, a.rangeRate(ds, "longitude", -180, 180))
		if len(rates) == 0 {
			break
		}
		return 100 * mean(rates)
	}

	derived := 0.4*completeness + 0.3*consistency + 0.3*validity
	if derived > accuracyCap {
		derived = accuracyCap
	}
	return derived
}

// numericPlausibility penalizes negative values and extreme outliers
// beyond the configured IQR fence.
func (a *Analyzer) numericPlausibility(ds *models.Dataset, columns []string) float64 {
	var rates []float64
	for _, col := range columns {
		if _, ok := ds.ColumnIndex(col); !ok {
			continue
		}
		var valuesSeen []float64
		for i := 0; i < ds.RecordCount(); i++ {
			cell := ds.Cell(i, col)
			if !cell.IsNull() {
				valuesSeen = append(valuesSeen, cell.Number())
			}
		}
		if len(valuesSeen) == 0 {
			continue
		}

		lowFence, highFence := iqrFences(valuesSeen, a.values.Thresholds.OutlierIQRFactor)
		ok := 0
		for _, v := range valuesSeen {
			if v >= 0 && v >= lowFence && v <= highFence {
				ok++
			}
		}
		rates = append(rates, float64(ok)/float64(len(valuesSeen)))
	}
	if len(rates) == 0 {
		return accuracyCap
	}
	return 100 * mean(rates)
}

// passRateText returns the share of non-null values in the column that
// pass the predicate, or -1 when the column is absent or empty.
func (a *Analyzer) passRateText(ds *models.Dataset, column string, pass func(string) bool) float64 {
	if _, ok := ds.ColumnIndex(column); !ok {
		return -1
	}
	total, ok := 0, 0
	for i := 0; i < ds.RecordCount(); i++ {
		cell := ds.Cell(i, column)
		if cell.IsNull() {
			continue
		}
		total++
		if pass(cell.Text()) {
			ok++
		}
	}
	if total == 0 {
		return -1
	}
	return float64(ok) / float64(total)
}

func (a *Analyzer) memberRate(ds *models.Dataset, column string, valid []string) float64 {
	set := make(map[string]struct{}, len(valid))
	for _, v := range valid {
		set[v] = struct{}{}
	}
	return a.passRateText(ds, column, func(s string) bool {
		_, ok := set[s]
		return ok
	})
}

func (a *Analyzer) referenceRate(ds *models.Dataset, column string, known map[string]struct{}) float64 {
	return a.passRateText(ds, column, func(s string) bool {
		_, ok := known[s]
		return ok
	})
}

func (a *Analyzer) rangeRate(ds *models.Dataset, column string, min, max float64) float64 {
	if _, ok := ds.ColumnIndex(column); !ok {
		return -1
	}
	total, ok := 0, 0
	for i := 0; i < ds.RecordCount(); i++ {
		cell := ds.Cell(i, column)
		if cell.IsNull() {
			continue
		}
		total++
		if cell.Number() >= min && cell.Number() <= max {
			ok++
		}
	}
	if total == 0 {
		return -1
	}
	return float64(ok) / float64(total)
}

func (a *Analyzer) netBelowGrossRate(ds *models.Dataset) float64 {
	if _, ok := ds.ColumnIndex("gross_weight"); !ok {
		return -1
	}
	if _, ok := ds.ColumnIndex("net_weight"); !ok {
		return -1
	}
	total, ok := 0, 0
	for i := 0; i < ds.RecordCount(); i++ {
		gross := ds.Cell(i, "gross_weight")
		net := ds.Cell(i, "net_weight")
		if gross.IsNull() || net.IsNull() {
			continue
		}
		total++
		if net.Number() <= gross.Number() {
			ok++
		}
	}
	if total == 0 {
		return -1
	}
	return float64(ok) / float64(total)
}

func (a *Analyzer) dateOrderRate(ds *models.Dataset, startCol, endCol string) float64 {
	if _, ok := ds.ColumnIndex(startCol); !ok {
		return -1
	}
	if _, ok := ds.ColumnIndex(endCol); !ok {
		return -1
	}
	total, ok := 0, 0
	for i := 0; i < ds.RecordCount(); i++ {
		start := ds.Cell(i, startCol)
		end := ds.Cell(i, endCol)
		if start.IsNull() || end.IsNull() {
			continue
		}
		total++
		if !end.Time().Before(start.Time()) {
			ok++
		}
	}
	if total == 0 {
		return -1
	}
	return float64(ok) / float64(total)
}

func idSet(ds *models.Dataset, column string) map[string]struct{} {
	set := make(map[string]struct{}, ds.RecordCount())
	for i := 0; i < ds.RecordCount(); i++ {
		cell := ds.Cell(i, column)
		if !cell.IsNull() {
			set[cell.Text()] = struct{}{}
		}
	}
	return set
}

func appendRate(rates []float64, rate float64) []float64 {
	if rate < 0 {
		return rates
	}
	return append(rates, rate)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func mixedCase(s string) bool {
	return s != strings.ToUpper(s) || s == strings.ToLower(s)
}

func notAllLower(s string) bool {
	return s != strings.ToLower(s) || s == strings.ToUpper(s)
}

func wellFormedEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}

func wellFormedPhone(s string) bool {
	return strings.HasPrefix(s, "+") && strings.Contains(s, "-")
}

// iqrFences returns the outlier fences around the interquartile range.
func iqrFences(xs []float64, factor float64) (float64, float64) {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - factor*iqr, q3 + factor*iqr
}

// quantile uses linear interpolation over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
