package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// stubStore is an in-memory StoreAPI used by the service tests. It is
// mutex-guarded because the scorecard builder and batch orchestrator hit it
// from multiple goroutines.
type stubStore struct {
	mu sync.Mutex

	assignments map[string][]Assignment
	comments    map[string][]CommentRecord
	scores      map[string][]float64
	adjustments map[string][]Adjustment
	evaluated   map[string]map[string]bool
	alignments  map[string]CalibrationAlignment

	scorecards map[string]CapabilityScorecard
	analyses   map[string]CommentAnalysis
	flags      []HRFlag

	failManagers map[string]bool
}

func newStubStore() *stubStore {
	return &stubStore{
		assignments:  map[string][]Assignment{},
		comments:     map[string][]CommentRecord{},
		scores:       map[string][]float64{},
		adjustments:  map[string][]Adjustment{},
		evaluated:    map[string]map[string]bool{},
		alignments:   map[string]CalibrationAlignment{},
		scorecards:   map[string]CapabilityScorecard{},
		analyses:     map[string]CommentAnalysis{},
		failManagers: map[string]bool{},
	}
}

var errStubQuery = errors.New("query failed")

func (s *stubStore) AssignmentsForManager(_ context.Context, _, managerID, _ string) ([]Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failManagers[managerID] {
		return nil, errStubQuery
	}
	return s.assignments[managerID], nil
}

func (s *stubStore) CommentsForManager(_ context.Context, _, managerID, _ string) ([]CommentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comments[managerID], nil
}

func (s *stubStore) ScoresForManager(_ context.Context, _, managerID, _ string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores[managerID], nil
}

func (s *stubStore) AdjustmentsForSession(_ context.Context, _, sessionID string) ([]Adjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustments[sessionID], nil
}

func (s *stubStore) EvaluatedEmployeeIDs(_ context.Context, _, managerID string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluated[managerID], nil
}

func (s *stubStore) ManagersWithAssignments(_ context.Context, _, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var managers []string
	for managerID := range s.assignments {
		managers = append(managers, managerID)
	}
	for managerID := range s.failManagers {
		if _, ok := s.assignments[managerID]; !ok {
			managers = append(managers, managerID)
		}
	}
	return managers, nil
}

func (s *stubStore) LatestAlignment(_ context.Context, _, managerID string) (CalibrationAlignment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alignment, ok := s.alignments[managerID]
	return alignment, ok, nil
}

func (s *stubStore) UpsertAlignment(_ context.Context, _, managerID, _ string, alignment CalibrationAlignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alignments[managerID] = alignment
	return nil
}

func (s *stubStore) UpsertCommentAnalysis(_ context.Context, _, participantID string, analysis CommentAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[participantID] = analysis
	return nil
}

func (s *stubStore) UpsertScorecard(_ context.Context, _ string, scorecard CapabilityScorecard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scorecards[scorecard.ManagerID+"/"+scorecard.CycleID] = scorecard
	return nil
}

func (s *stubStore) HasUnresolvedFlag(_ context.Context, _, managerID, cycleID, flagType string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, flag := range s.flags {
		if flag.ManagerID == managerID && flag.CycleID == cycleID && flag.FlagType == flagType && !flag.Resolved {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) InsertFlag(_ context.Context, _ string, flag HRFlag) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flag.ID = fmt.Sprintf("flag-%d", len(s.flags)+1)
	s.flags = append(s.flags, flag)
	return flag.ID, nil
}

func (s *stubStore) ListFlags(_ context.Context, _, managerID string, resolved *bool, _, _ int) ([]HRFlag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []HRFlag
	for _, flag := range s.flags {
		if managerID != "" && flag.ManagerID != managerID {
			continue
		}
		if resolved != nil && flag.Resolved != *resolved {
			continue
		}
		out = append(out, flag)
	}
	return out, nil
}

func (s *stubStore) ResolveFlag(_ context.Context, _, flagID, resolvedBy, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.flags {
		if s.flags[i].ID == flagID && !s.flags[i].Resolved {
			s.flags[i].Resolved = true
			s.flags[i].ResolvedBy = resolvedBy
			s.flags[i].ResolutionNote = note
			return nil
		}
	}
	return ErrFlagNotFound
}

type recordedDecision struct {
	Action      string
	Confidence  float64
	HumanReview bool
}

type stubDecisions struct {
	mu      sync.Mutex
	entries []recordedDecision
	err     error
}

func (d *stubDecisions) Record(_ context.Context, _, action, _ string, confidence float64, _ any, _ []string, humanReview bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.entries = append(d.entries, recordedDecision{Action: action, Confidence: confidence, HumanReview: humanReview})
	return nil
}
