package analytics

import (
	"context"
	"testing"
)

func TestBatchAnalyzeIsolatesFailures(t *testing.T) {
	store := newStubStore()
	seedLenientManager(store, "manager-a")
	seedHealthyManager(store, "manager-c")
	store.failManagers["manager-b"] = true
	service, _ := newTestService(store)

	result, err := service.BatchAnalyze(context.Background(), "t1", "cycle1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 3 {
		t.Fatalf("expected 3 managers, got %d", result.Total)
	}
	if result.Analyzed != 2 || result.Failed != 1 {
		t.Fatalf("expected 2 analyzed and 1 failed, got %+v", result)
	}

	for _, item := range result.Results {
		if item.ManagerID == "manager-b" {
			if item.Success || item.Error == "" {
				t.Fatalf("expected recorded failure for manager-b, got %+v", item)
			}
			continue
		}
		if !item.Success {
			t.Fatalf("sibling managers must not be affected by one failure: %+v", item)
		}
	}
}

func TestBatchAnalyzeEmptyOrganization(t *testing.T) {
	service, _ := newTestService(newStubStore())

	result, err := service.BatchAnalyze(context.Background(), "t1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 || result.Failed != 0 || len(result.Results) != 0 {
		t.Fatalf("expected empty batch result, got %+v", result)
	}
}

func TestBatchAnalyzeResultsSorted(t *testing.T) {
	store := newStubStore()
	seedHealthyManager(store, "m3")
	seedHealthyManager(store, "m1")
	seedHealthyManager(store, "m2")
	service, _ := newTestService(store)

	result, err := service.BatchAnalyze(context.Background(), "t1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(result.Results); i++ {
		if result.Results[i-1].ManagerID > result.Results[i].ManagerID {
			t.Fatalf("results not sorted by manager: %+v", result.Results)
		}
	}
}
