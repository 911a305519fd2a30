package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestClassifierOutputRanges(t *testing.T) {
	c := NewSimulatedClassifier(0, 1)
	classes := map[string]bool{"Drusen": true, "DME": true, "CNV": true, "Normal": true}

	for i := 0; i < 500; i++ {
		res, err := c.Classify(context.Background(), "data:image/png;base64,xxx")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if !classes[res.Diagnosis] {
			t.Fatalf("unexpected diagnosis %q", res.Diagnosis)
		}
		if res.Confidence < 85 || res.Confidence > 99 {
			t.Fatalf("confidence %v out of [85,99]", res.Confidence)
		}
		if res.Confidence != math.Trunc(res.Confidence) {
			t.Fatalf("confidence %v not rounded to an integer", res.Confidence)
		}
	}
}

func TestFluidQuantifierOutputRanges(t *testing.T) {
	q := NewSimulatedFluidQuantifier(0, 1)

	for i := 0; i < 500; i++ {
		res, err := q.Quantify(context.Background(), "data:image/png;base64,xxx")
		if err != nil {
			t.Fatalf("Quantify: %v", err)
		}
		if res.Percentage < 15.0 || res.Percentage > 50.0 {
			t.Fatalf("percentage %v out of [15,50]", res.Percentage)
		}
		if res.Volume < 0.05 || res.Volume > 0.20 {
			t.Fatalf("volume %v out of [0.05,0.20]", res.Volume)
		}
		if math.Abs(res.Percentage*10-math.Round(res.Percentage*10)) > 1e-9 {
			t.Fatalf("percentage %v not rounded to one decimal", res.Percentage)
		}
		if res.Severity != Severity(res.Percentage) {
			t.Fatalf("severity %q does not match percentage %v", res.Severity, res.Percentage)
		}
	}
}

func TestSeverityThresholds(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{15.0, "Mild"},
		{24.9, "Mild"},
		{25.0, "Moderate"},
		{39.9, "Moderate"},
		{40.0, "Severe"},
		{40.1, "Severe"},
		{50.0, "Severe"},
	}
	for _, tc := range cases {
		if got := Severity(tc.percentage); got != tc.want {
			t.Errorf("Severity(%v) = %q, want %q", tc.percentage, got, tc.want)
		}
	}
}

func TestEnhancerReturnsImageUnchanged(t *testing.T) {
	e := NewSimulatedEnhancer(0, 0, 1)
	const image = "data:image/png;base64,original"

	res, err := e.Enhance(context.Background(), image)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	if res.ImageURL != image {
		t.Errorf("enhancer altered the image: %q", res.ImageURL)
	}
}

func TestAnalysisHonorsCancellation(t *testing.T) {
	c := NewSimulatedClassifier(time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := c.Classify(ctx, "data:image/png;base64,xxx")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancellation did not short-circuit the delay")
	}
}
