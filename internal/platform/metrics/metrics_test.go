package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	collector := New()
	collector.Record(200, 10*time.Millisecond)
	collector.Record(500, 30*time.Millisecond)
	collector.Record(429, 0)
	collector.RecordAction("generate_capability_scorecard")
	collector.RecordAction("generate_capability_scorecard")

	snapshot := collector.Snapshot()
	if snapshot["requestsTotal"].(uint64) != 3 {
		t.Fatalf("requestsTotal = %v", snapshot["requestsTotal"])
	}
	if snapshot["errorsTotal"].(uint64) != 1 {
		t.Fatalf("errorsTotal = %v", snapshot["errorsTotal"])
	}
	if snapshot["rateLimitedTotal"].(uint64) != 1 {
		t.Fatalf("rateLimitedTotal = %v", snapshot["rateLimitedTotal"])
	}
	actions := snapshot["actionsTotal"].(map[string]uint64)
	if actions["generate_capability_scorecard"] != 2 {
		t.Fatalf("action count = %d", actions["generate_capability_scorecard"])
	}
}
