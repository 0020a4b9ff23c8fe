package appraisal

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateCycle(ctx context.Context, tenantID, name string, startDate, endDate, evaluationDeadline time.Time) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO review_cycles (tenant_id, name, start_date, end_date, evaluation_deadline, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, tenantID, name, startDate, endDate, evaluationDeadline, CycleStatusActive).Scan(&id)
	return id, err
}

func (s *Store) ListCycles(ctx context.Context, tenantID string) ([]ReviewCycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, start_date, end_date, evaluation_deadline, status
    FROM review_cycles
    WHERE tenant_id = $1
    ORDER BY start_date DESC
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []ReviewCycle
	for rows.Next() {
		var cycle ReviewCycle
		if err := rows.Scan(&cycle.ID, &cycle.Name, &cycle.StartDate, &cycle.EndDate, &cycle.EvaluationDeadline, &cycle.Status); err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, rows.Err()
}

func (s *Store) CycleByID(ctx context.Context, tenantID, cycleID string) (ReviewCycle, error) {
	var cycle ReviewCycle
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, start_date, end_date, evaluation_deadline, status
    FROM review_cycles
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, cycleID).Scan(&cycle.ID, &cycle.Name, &cycle.StartDate, &cycle.EndDate, &cycle.EvaluationDeadline, &cycle.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReviewCycle{}, ErrCycleNotFound
	}
	return cycle, err
}

func (s *Store) UpdateCycleStatus(ctx context.Context, tenantID, cycleID, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE review_cycles SET status = $1 WHERE tenant_id = $2 AND id = $3
  `, status, tenantID, cycleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) CreateAssignments(ctx context.Context, tenantID, cycleID string, deadline time.Time, pairs []EnrollmentPair) (int, error) {
	created := 0
	for _, pair := range pairs {
		tag, err := s.DB.Exec(ctx, `
      INSERT INTO review_assignments (tenant_id, cycle_id, evaluator_id, employee_id, status, deadline)
      VALUES ($1,$2,$3,$4,$5,$6)
      ON CONFLICT (cycle_id, evaluator_id, employee_id) DO NOTHING
    `, tenantID, cycleID, pair.EvaluatorID, pair.EmployeeID, AssignmentStatusPending, deadline)
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func (s *Store) ListAssignments(ctx context.Context, tenantID, cycleID, evaluatorID string) ([]ReviewAssignment, error) {
	query := `
    SELECT id, cycle_id, evaluator_id, employee_id, status, submitted_at, deadline
    FROM review_assignments
    WHERE tenant_id = $1
  `
	args := []any{tenantID}
	if cycleID != "" {
		query += " AND cycle_id = $2"
		args = append(args, cycleID)
	}
	if evaluatorID != "" {
		query += " AND evaluator_id = $" + itoa(len(args)+1)
		args = append(args, evaluatorID)
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []ReviewAssignment
	for rows.Next() {
		var assignment ReviewAssignment
		if err := rows.Scan(&assignment.ID, &assignment.CycleID, &assignment.EvaluatorID, &assignment.EmployeeID,
			&assignment.Status, &assignment.SubmittedAt, &assignment.Deadline); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func (s *Store) AssignmentByID(ctx context.Context, tenantID, assignmentID string) (ReviewAssignment, error) {
	var assignment ReviewAssignment
	err := s.DB.QueryRow(ctx, `
    SELECT id, cycle_id, evaluator_id, employee_id, status, submitted_at, deadline
    FROM review_assignments
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, assignmentID).Scan(&assignment.ID, &assignment.CycleID, &assignment.EvaluatorID,
		&assignment.EmployeeID, &assignment.Status, &assignment.SubmittedAt, &assignment.Deadline)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReviewAssignment{}, ErrAssignmentNotFound
	}
	return assignment, err
}

// SaveSubmission writes scores, comments and the completion mark in one
// transaction so a partially stored review can never feed the analytics
// engine.
func (s *Store) SaveSubmission(ctx context.Context, tenantID, assignmentID string, submission ReviewSubmission, submittedAt time.Time) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, entry := range submission.Scores {
		if _, err := tx.Exec(ctx, `
      INSERT INTO review_scores (tenant_id, assignment_id, competency, score)
      VALUES ($1,$2,$3,$4)
    `, tenantID, assignmentID, entry.Competency, entry.Score); err != nil {
			return err
		}
	}
	for _, entry := range submission.Comments {
		if _, err := tx.Exec(ctx, `
      INSERT INTO review_comments (tenant_id, assignment_id, comment_type, body)
      VALUES ($1,$2,$3,$4)
    `, tenantID, assignmentID, entry.Type, entry.Body); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
    UPDATE review_assignments SET status = $1, submitted_at = $2 WHERE tenant_id = $3 AND id = $4
  `, AssignmentStatusCompleted, submittedAt, tenantID, assignmentID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) CreateSession(ctx context.Context, tenantID, cycleID, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO calibration_sessions (tenant_id, cycle_id, name, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, tenantID, cycleID, name, SessionStatusOpen).Scan(&id)
	return id, err
}

func (s *Store) ListSessions(ctx context.Context, tenantID, cycleID string) ([]CalibrationSession, error) {
	query := `
    SELECT id, cycle_id, name, status, created_at
    FROM calibration_sessions
    WHERE tenant_id = $1
  `
	args := []any{tenantID}
	if cycleID != "" {
		query += " AND cycle_id = $2"
		args = append(args, cycleID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []CalibrationSession
	for rows.Next() {
		var session CalibrationSession
		if err := rows.Scan(&session.ID, &session.CycleID, &session.Name, &session.Status, &session.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) SessionStatus(ctx context.Context, tenantID, sessionID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT status FROM calibration_sessions WHERE tenant_id = $1 AND id = $2
  `, tenantID, sessionID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSessionNotFound
	}
	return status, err
}

func (s *Store) UpsertAdjustments(ctx context.Context, tenantID, sessionID string, adjustments []CalibrationAdjustment) (int, error) {
	recorded := 0
	for _, adjustment := range adjustments {
		if _, err := s.DB.Exec(ctx, `
      INSERT INTO calibration_adjustments (tenant_id, session_id, employee_id, original_score, adjusted_score)
      VALUES ($1,$2,$3,$4,$5)
      ON CONFLICT (session_id, employee_id)
      DO UPDATE SET original_score = EXCLUDED.original_score, adjusted_score = EXCLUDED.adjusted_score
    `, tenantID, sessionID, adjustment.EmployeeID, adjustment.OriginalScore, adjustment.AdjustedScore); err != nil {
			return recorded, err
		}
		recorded++
	}
	return recorded, nil
}

func (s *Store) CloseSession(ctx context.Context, tenantID, sessionID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE calibration_sessions SET status = $1 WHERE tenant_id = $2 AND id = $3
  `, SessionStatusClosed, tenantID, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
