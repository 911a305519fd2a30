// Package analysis isolates the scan analyzers behind small interfaces so a
// real inference backend can replace the simulated engines without touching
// callers.
package analysis

import "context"

// DiagnosisResult is a classification of an OCT scan.
type DiagnosisResult struct {
	Diagnosis  string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"` // percent, rounded to the nearest integer
}

// FluidResult quantifies macular fluid in an OCT scan.
type FluidResult struct {
	Percentage float64 `json:"percentage"` // percent, one decimal
	Volume     float64 `json:"volume"`     // mm3, three decimals
	Severity   string  `json:"severity"`
}

// EnhanceResult carries the processed image.
type EnhanceResult struct {
	ImageURL string `json:"imageUrl"`
}

type Classifier interface {
	Classify(ctx context.Context, imageURL string) (DiagnosisResult, error)
}

type FluidQuantifier interface {
	Quantify(ctx context.Context, imageURL string) (FluidResult, error)
}

type Enhancer interface {
	Enhance(ctx context.Context, imageURL string) (EnhanceResult, error)
}

// Severity buckets a fluid percentage: below 25 is Mild, below 40 Moderate,
// anything else Severe.
func Severity(percentage float64) string {
	switch {
	case percentage < 25:
		return "Mild"
	case percentage < 40:
		return "Moderate"
	default:
		return "Severe"
	}
}
