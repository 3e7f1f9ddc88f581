package values

type Config interface {
}

// DimensionWeights controls the contribution of each quality dimension to
// the overall 0-10 score. The defaults sum to 1.
type DimensionWeights struct {
	Completeness float64 `yaml:"completeness"`
	Consistency  float64 `yaml:"consistency"`
	Validity     float64 `yaml:"validity"`
	Uniqueness   float64 `yaml:"uniqueness"`
	Timeliness   float64 `yaml:"timeliness"`
	Accuracy     float64 `yaml:"accuracy"`
}

// ValidSets lists the accepted code values used by the validity checks.
type ValidSets struct {
	ProductCategories []string `yaml:"product_categories"`
	UnitsOfMeasure    []string `yaml:"units_of_measure"`
	LocationTypes     []string `yaml:"location_types"`
}

// Thresholds tunes issue detection.
type Thresholds struct {
	StaleAfterDays   int     `yaml:"stale_after_days"`
	MissingFieldPct  float64 `yaml:"missing_field_pct"`
	HighImpactPct    float64 `yaml:"high_impact_pct"`
	OutlierIQRFactor float64 `yaml:"outlier_iqr_factor"`
}

type AnalyzerValues struct {
	Weights    DimensionWeights `yaml:"weights"`
	ValidSets  ValidSets        `yaml:"valid_sets"`
	Thresholds Thresholds       `yaml:"thresholds"`
}

func DefaultAnalyzerValues() AnalyzerValues {
	return AnalyzerValues{
		Weights: DimensionWeights{
			Completeness: 0.25,
			Consistency:  0.20,
			Validity:     0.20,
			Uniqueness:   0.15,
			Timeliness:   0.10,
			Accuracy:     0.10,
		},
		ValidSets: ValidSets{
			ProductCategories: []string{"RAW", "WIP", "FG", "SPARE", "SERVICE"},
			UnitsOfMeasure:    []string{"EA", "KG", "L", "M", "PC", "CS"},
			LocationTypes:     []string{"PLANT", "DC", "WAREHOUSE", "STORE", "SUPPLIER", "CUSTOMER"},
		},
		Thresholds: Thresholds{
			StaleAfterDays:   90,
			MissingFieldPct:  5,
			HighImpactPct:    20,
			OutlierIQRFactor: 5,
		},
	}
}
