package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculateVarianceEmpty(t *testing.T) {
	metrics := CalculateVariance(nil)
	if metrics.DifferentiationScore != 50 {
		t.Fatalf("expected neutral differentiation 50, got %v", metrics.DifferentiationScore)
	}
	if metrics.AvgScore != 0 || metrics.StdDev != 0 {
		t.Fatalf("expected zero aggregates, got %+v", metrics)
	}
	if len(metrics.Distribution) != 0 {
		t.Fatalf("expected empty distribution, got %v", metrics.Distribution)
	}
}

func TestCalculateVarianceIdealSpread(t *testing.T) {
	// Population stddev of two values is half their gap: |4.6-3.0|/2 = 0.8.
	metrics := CalculateVariance([]float64{3.0, 4.6})
	if metrics.StdDev != 0.8 {
		t.Fatalf("expected stddev 0.8, got %v", metrics.StdDev)
	}
	if metrics.DifferentiationScore != 100 {
		t.Fatalf("expected 100 at the ideal spread, got %v", metrics.DifferentiationScore)
	}
}

func TestCalculateVarianceUniformScores(t *testing.T) {
	metrics := CalculateVariance([]float64{5, 5, 5, 5})
	if metrics.AvgScore != 5 || metrics.StdDev != 0 {
		t.Fatalf("expected avg 5 and stddev 0, got %+v", metrics)
	}
	// deviation from ideal is 0.8, so 100 - 0.8*50 = 60
	if metrics.DifferentiationScore != 60 {
		t.Fatalf("expected differentiation 60, got %v", metrics.DifferentiationScore)
	}
}

func TestCalculateVarianceDistributionBuckets(t *testing.T) {
	metrics := CalculateVariance([]float64{1.2, 2.6, 3, 3.4, 5})
	want := map[string]int{"1": 1, "3": 3, "5": 1}
	if diff := cmp.Diff(want, metrics.Distribution); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
	if metrics.ScoresGiven != 5 {
		t.Fatalf("expected 5 scores, got %d", metrics.ScoresGiven)
	}
}

func TestCalculateVarianceWideSpreadPenalized(t *testing.T) {
	metrics := CalculateVariance([]float64{1, 1, 5, 5})
	if metrics.StdDev != 2 {
		t.Fatalf("expected stddev 2, got %v", metrics.StdDev)
	}
	// |2 - 0.8| * 50 = 60 penalty
	if metrics.DifferentiationScore != 40 {
		t.Fatalf("expected differentiation 40, got %v", metrics.DifferentiationScore)
	}
}
