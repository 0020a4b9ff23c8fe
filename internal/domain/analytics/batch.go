package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchAnalyze runs flag generation for every manager with at least one
// assignment in the organization. Managers are processed with bounded
// concurrency and no ordering guarantee; a failing manager is recorded and
// does not cancel sibling work.
func (s *Service) BatchAnalyze(ctx context.Context, tenantID, cycleID string) (BatchResult, error) {
	managers, err := s.store.ManagersWithAssignments(ctx, tenantID, cycleID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list managers: %w", err)
	}

	result := BatchResult{Total: len(managers), Results: make([]BatchItemResult, 0, len(managers))}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for _, managerID := range managers {
		managerID := managerID
		g.Go(func() error {
			item := BatchItemResult{ManagerID: managerID, Success: true}
			report, err := s.GenerateHRFlags(gctx, tenantID, managerID, cycleID)
			if err != nil {
				item.Success = false
				item.Error = err.Error()
			} else {
				item.FlagsRaised = len(report.Flags)
			}

			mu.Lock()
			result.Results = append(result.Results, item)
			if item.Success {
				result.Analyzed++
			} else {
				result.Failed++
			}
			mu.Unlock()
			return nil
		})
	}
	// Goroutines never return errors; failures are isolated per item.
	_ = g.Wait()

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].ManagerID < result.Results[j].ManagerID
	})
	return result, nil
}
