package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (s *Store) AssignmentsForManager(ctx context.Context, tenantID, managerID, cycleID string) ([]Assignment, error) {
	query := `
    SELECT id, employee_id, status, submitted_at, deadline
    FROM review_assignments
    WHERE tenant_id = $1 AND evaluator_id = $2
  `
	args := []any{tenantID, managerID}
	if cycleID != "" {
		query += " AND cycle_id = $3"
		args = append(args, cycleID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var assignment Assignment
		if err := rows.Scan(&assignment.ID, &assignment.EmployeeID, &assignment.Status, &assignment.SubmittedAt, &assignment.Deadline); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func (s *Store) CommentsForManager(ctx context.Context, tenantID, managerID, cycleID string) ([]CommentRecord, error) {
	query := `
    SELECT c.id, c.assignment_id, c.body, c.comment_type
    FROM review_comments c
    JOIN review_assignments a ON c.assignment_id = a.id
    WHERE a.tenant_id = $1 AND a.evaluator_id = $2
  `
	args := []any{tenantID, managerID}
	if cycleID != "" {
		query += " AND a.cycle_id = $3"
		args = append(args, cycleID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []CommentRecord
	for rows.Next() {
		var comment CommentRecord
		if err := rows.Scan(&comment.ID, &comment.ParticipantID, &comment.Text, &comment.Type); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *Store) ScoresForManager(ctx context.Context, tenantID, managerID, cycleID string) ([]float64, error) {
	query := `
    SELECT r.score
    FROM review_scores r
    JOIN review_assignments a ON r.assignment_id = a.id
    WHERE a.tenant_id = $1 AND a.evaluator_id = $2
  `
	args := []any{tenantID, managerID}
	if cycleID != "" {
		query += " AND a.cycle_id = $3"
		args = append(args, cycleID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (s *Store) AdjustmentsForSession(ctx context.Context, tenantID, sessionID string) ([]Adjustment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, original_score, adjusted_score
    FROM calibration_adjustments
    WHERE tenant_id = $1 AND session_id = $2
  `, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []Adjustment
	for rows.Next() {
		var adjustment Adjustment
		if err := rows.Scan(&adjustment.EmployeeID, &adjustment.OriginalScore, &adjustment.AdjustedScore); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adjustment)
	}
	return adjustments, rows.Err()
}

func (s *Store) EvaluatedEmployeeIDs(ctx context.Context, tenantID, managerID string) (map[string]bool, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT employee_id
    FROM review_assignments
    WHERE tenant_id = $1 AND evaluator_id = $2
  `, tenantID, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evaluated := map[string]bool{}
	for rows.Next() {
		var employeeID string
		if err := rows.Scan(&employeeID); err != nil {
			return nil, err
		}
		evaluated[employeeID] = true
	}
	return evaluated, rows.Err()
}

func (s *Store) ManagersWithAssignments(ctx context.Context, tenantID, cycleID string) ([]string, error) {
	query := "SELECT DISTINCT evaluator_id FROM review_assignments WHERE tenant_id = $1"
	args := []any{tenantID}
	if cycleID != "" {
		query += " AND cycle_id = $2"
		args = append(args, cycleID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []string
	for rows.Next() {
		var managerID string
		if err := rows.Scan(&managerID); err != nil {
			return nil, err
		}
		managers = append(managers, managerID)
	}
	return managers, rows.Err()
}

func (s *Store) LatestAlignment(ctx context.Context, tenantID, managerID string) (CalibrationAlignment, bool, error) {
	var alignment CalibrationAlignment
	err := s.DB.QueryRow(ctx, `
    SELECT session_id, employees_reviewed, unchanged_count, increased_count, decreased_count,
           avg_adjustment, max_adjustment, adjustment_rate, alignment_score, drift_pattern, training_recommended
    FROM manager_calibration_alignment
    WHERE tenant_id = $1 AND manager_id = $2
    ORDER BY computed_at DESC
    LIMIT 1
  `, tenantID, managerID).Scan(
		&alignment.SessionID, &alignment.EmployeesReviewed, &alignment.Unchanged, &alignment.Increased,
		&alignment.Decreased, &alignment.AvgAdjustment, &alignment.MaxAdjustment, &alignment.AdjustmentRate,
		&alignment.AlignmentScore, &alignment.DriftPattern, &alignment.TrainingRecommended)
	if errors.Is(err, pgx.ErrNoRows) {
		return CalibrationAlignment{}, false, nil
	}
	if err != nil {
		return CalibrationAlignment{}, false, err
	}
	return alignment, true, nil
}

func (s *Store) UpsertAlignment(ctx context.Context, tenantID, managerID, sessionID string, alignment CalibrationAlignment) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO manager_calibration_alignment
      (tenant_id, manager_id, session_id, employees_reviewed, unchanged_count, increased_count, decreased_count,
       avg_adjustment, max_adjustment, adjustment_rate, alignment_score, drift_pattern, training_recommended)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    ON CONFLICT (tenant_id, manager_id, session_id)
    DO UPDATE SET
      employees_reviewed = EXCLUDED.employees_reviewed,
      unchanged_count = EXCLUDED.unchanged_count,
      increased_count = EXCLUDED.increased_count,
      decreased_count = EXCLUDED.decreased_count,
      avg_adjustment = EXCLUDED.avg_adjustment,
      max_adjustment = EXCLUDED.max_adjustment,
      adjustment_rate = EXCLUDED.adjustment_rate,
      alignment_score = EXCLUDED.alignment_score,
      drift_pattern = EXCLUDED.drift_pattern,
      training_recommended = EXCLUDED.training_recommended,
      computed_at = now()
  `, tenantID, managerID, sessionID, alignment.EmployeesReviewed, alignment.Unchanged, alignment.Increased,
		alignment.Decreased, alignment.AvgAdjustment, alignment.MaxAdjustment, alignment.AdjustmentRate,
		alignment.AlignmentScore, alignment.DriftPattern, alignment.TrainingRecommended)
	return err
}

func (s *Store) UpsertCommentAnalysis(ctx context.Context, tenantID, participantID string, analysis CommentAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO comment_analyses (tenant_id, participant_id, overall_score, payload)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (tenant_id, participant_id)
    DO UPDATE SET overall_score = EXCLUDED.overall_score, payload = EXCLUDED.payload, updated_at = now()
  `, tenantID, participantID, analysis.OverallScore, payload)
	return err
}

func (s *Store) UpsertScorecard(ctx context.Context, tenantID string, scorecard CapabilityScorecard) error {
	breakdown, err := json.Marshal(scorecard.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO manager_scorecards
      (tenant_id, manager_id, cycle_id, timeliness_score, comment_quality_score, differentiation_score,
       calibration_score, overall_score, trend, breakdown)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    ON CONFLICT (tenant_id, manager_id, cycle_id)
    DO UPDATE SET
      timeliness_score = EXCLUDED.timeliness_score,
      comment_quality_score = EXCLUDED.comment_quality_score,
      differentiation_score = EXCLUDED.differentiation_score,
      calibration_score = EXCLUDED.calibration_score,
      overall_score = EXCLUDED.overall_score,
      trend = EXCLUDED.trend,
      breakdown = EXCLUDED.breakdown,
      computed_at = now()
  `, tenantID, scorecard.ManagerID, scorecard.CycleID, scorecard.TimelinessScore, scorecard.CommentQualityScore,
		scorecard.DifferentiationScore, scorecard.CalibrationScore, scorecard.OverallScore, scorecard.Trend, breakdown)
	return err
}

func (s *Store) HasUnresolvedFlag(ctx context.Context, tenantID, managerID, cycleID, flagType string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM hr_capability_flags
    WHERE tenant_id = $1 AND manager_id = $2 AND cycle_id = $3 AND flag_type = $4 AND resolved = false
  `, tenantID, managerID, cycleID, flagType).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) InsertFlag(ctx context.Context, tenantID string, flag HRFlag) (string, error) {
	evidence, err := json.Marshal(flag.EvidenceData)
	if err != nil {
		return "", fmt.Errorf("marshal evidence: %w", err)
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO hr_capability_flags
      (tenant_id, manager_id, cycle_id, flag_type, severity, title, description, evidence, affected_employees)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, tenantID, flag.ManagerID, flag.CycleID, flag.FlagType, flag.Severity, flag.Title, flag.Description,
		evidence, flag.AffectedEmployees).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListFlags(ctx context.Context, tenantID, managerID string, resolved *bool, limit, offset int) ([]HRFlag, error) {
	query := `
    SELECT id, manager_id, cycle_id, flag_type, severity, title, description, evidence,
           affected_employees, resolved, COALESCE(resolved_by, ''), COALESCE(resolution_note, ''), created_at
    FROM hr_capability_flags
    WHERE tenant_id = $1
  `
	args := []any{tenantID}
	if managerID != "" {
		query += fmt.Sprintf(" AND manager_id = $%d", len(args)+1)
		args = append(args, managerID)
	}
	if resolved != nil {
		query += fmt.Sprintf(" AND resolved = $%d", len(args)+1)
		args = append(args, *resolved)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []HRFlag
	for rows.Next() {
		var flag HRFlag
		var evidence json.RawMessage
		if err := rows.Scan(&flag.ID, &flag.ManagerID, &flag.CycleID, &flag.FlagType, &flag.Severity, &flag.Title,
			&flag.Description, &evidence, &flag.AffectedEmployees, &flag.Resolved, &flag.ResolvedBy,
			&flag.ResolutionNote, &flag.CreatedAt); err != nil {
			return nil, err
		}
		flag.EvidenceData = evidence
		flags = append(flags, flag)
	}
	return flags, rows.Err()
}

func (s *Store) ResolveFlag(ctx context.Context, tenantID, flagID, resolvedBy, note string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE hr_capability_flags
    SET resolved = true, resolved_by = $1, resolution_note = $2, resolved_at = now()
    WHERE tenant_id = $3 AND id = $4 AND resolved = false
  `, resolvedBy, note, tenantID, flagID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFlagNotFound
	}
	return nil
}
