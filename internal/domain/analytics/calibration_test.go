package analytics

import "testing"

func ptr(v float64) *float64 { return &v }

func evaluatedSet(ids ...string) map[string]bool {
	out := map[string]bool{}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func TestCalculateAlignmentNoOverlap(t *testing.T) {
	adjustments := []Adjustment{{EmployeeID: "other", OriginalScore: 3, AdjustedScore: ptr(4.0)}}
	alignment := CalculateAlignment(adjustments, evaluatedSet("e1", "e2"))

	if alignment.EmployeesReviewed != 0 {
		t.Fatalf("expected no retained adjustments, got %+v", alignment)
	}
	if alignment.AlignmentScore != 100 {
		t.Fatalf("expected default alignment 100, got %v", alignment.AlignmentScore)
	}
	if alignment.DriftPattern != DriftAligned {
		t.Fatalf("expected aligned drift, got %s", alignment.DriftPattern)
	}
}

func TestCalculateAlignmentMissingAdjustedScoreIsUnchanged(t *testing.T) {
	adjustments := []Adjustment{
		{EmployeeID: "e1", OriginalScore: 3},
		{EmployeeID: "e2", OriginalScore: 4, AdjustedScore: ptr(4.0)},
	}
	alignment := CalculateAlignment(adjustments, evaluatedSet("e1", "e2"))

	if alignment.Unchanged != 2 || alignment.Increased != 0 || alignment.Decreased != 0 {
		t.Fatalf("expected both unchanged, got %+v", alignment)
	}
	if alignment.AlignmentScore != 100 || alignment.TrainingRecommended {
		t.Fatalf("expected perfect alignment, got %+v", alignment)
	}
}

func TestCalculateAlignmentConsistentlyLow(t *testing.T) {
	// Calibration raised most of the manager's scores.
	adjustments := []Adjustment{
		{EmployeeID: "e1", OriginalScore: 2, AdjustedScore: ptr(3.0)},
		{EmployeeID: "e2", OriginalScore: 2.5, AdjustedScore: ptr(3.5)},
		{EmployeeID: "e3", OriginalScore: 3, AdjustedScore: ptr(4.0)},
		{EmployeeID: "e4", OriginalScore: 3, AdjustedScore: ptr(3.0)},
	}
	alignment := CalculateAlignment(adjustments, evaluatedSet("e1", "e2", "e3", "e4"))

	if alignment.DriftPattern != DriftConsistentlyLow {
		t.Fatalf("expected consistently_low, got %s", alignment.DriftPattern)
	}
	if alignment.AdjustmentRate != 75 || alignment.AlignmentScore != 25 {
		t.Fatalf("expected 75%% adjustment rate, got %+v", alignment)
	}
	if !alignment.TrainingRecommended {
		t.Fatal("expected training recommendation below 70 alignment")
	}
	if alignment.AvgAdjustment != 0.75 || alignment.MaxAdjustment != 1 {
		t.Fatalf("unexpected adjustment magnitudes: %+v", alignment)
	}
}

func TestCalculateAlignmentConsistentlyHigh(t *testing.T) {
	adjustments := []Adjustment{
		{EmployeeID: "e1", OriginalScore: 5, AdjustedScore: ptr(4.0)},
		{EmployeeID: "e2", OriginalScore: 4.5, AdjustedScore: ptr(3.5)},
		{EmployeeID: "e3", OriginalScore: 4, AdjustedScore: ptr(3.0)},
	}
	alignment := CalculateAlignment(adjustments, evaluatedSet("e1", "e2", "e3"))

	if alignment.DriftPattern != DriftConsistentlyHigh {
		t.Fatalf("expected consistently_high, got %s", alignment.DriftPattern)
	}
}

func TestCalculateAlignmentVariable(t *testing.T) {
	adjustments := []Adjustment{
		{EmployeeID: "e1", OriginalScore: 3, AdjustedScore: ptr(4.0)},
		{EmployeeID: "e2", OriginalScore: 4, AdjustedScore: ptr(3.0)},
		{EmployeeID: "e3", OriginalScore: 3, AdjustedScore: ptr(3.0)},
		{EmployeeID: "e4", OriginalScore: 3, AdjustedScore: ptr(3.0)},
	}
	alignment := CalculateAlignment(adjustments, evaluatedSet("e1", "e2", "e3", "e4"))

	// One up, one down: neither dominates, but half the team moved.
	if alignment.DriftPattern != DriftVariable {
		t.Fatalf("expected variable, got %s", alignment.DriftPattern)
	}
}

func TestCalculateAlignmentDriftIsTotal(t *testing.T) {
	cases := [][]Adjustment{
		{{EmployeeID: "e1", OriginalScore: 3, AdjustedScore: ptr(4.0)}},
		{{EmployeeID: "e1", OriginalScore: 3, AdjustedScore: ptr(2.0)}},
		{{EmployeeID: "e1", OriginalScore: 3, AdjustedScore: ptr(3.0)}},
		{},
	}
	valid := map[string]bool{
		DriftAligned: true, DriftVariable: true,
		DriftConsistentlyLow: true, DriftConsistentlyHigh: true,
	}
	for i, adjustments := range cases {
		alignment := CalculateAlignment(adjustments, evaluatedSet("e1"))
		if !valid[alignment.DriftPattern] {
			t.Fatalf("case %d: invalid drift pattern %q", i, alignment.DriftPattern)
		}
	}
}
