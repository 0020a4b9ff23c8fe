package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Decision is one explainability entry: the audit trail behind an automated
// scoring or flagging outcome. Entries are append-only; the engine never
// updates or deletes them.
type Decision struct {
	ID                  string          `json:"id"`
	Action              string          `json:"action"`
	ModelVersion        string          `json:"modelVersion"`
	Confidence          float64         `json:"confidence"`
	InputSummary        json.RawMessage `json:"inputSummary,omitempty"`
	Limitations         []string        `json:"limitations"`
	HumanReviewRequired bool            `json:"humanReviewRequired"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type Filter struct {
	Action      string
	HumanReview *bool
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, tenantID, action, modelVersion string, confidence float64, summary any, limitations []string, humanReview bool) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal input summary: %w", err)
	}
	limitationsJSON, err := json.Marshal(limitations)
	if err != nil {
		return fmt.Errorf("marshal limitations: %w", err)
	}

	_, err = s.DB.Exec(ctx, `
    INSERT INTO ai_decision_log (tenant_id, action, model_version, confidence, input_summary, limitations, human_review_required)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, tenantID, action, modelVersion, confidence, summaryJSON, limitationsJSON, humanReview)
	return err
}

func (s *Service) Count(ctx context.Context, tenantID string, filter Filter) (int, error) {
	query, args := s.buildBaseQuery("SELECT COUNT(1)", tenantID, filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]Decision, error) {
	query, args := s.buildBaseQuery(
		"SELECT id, action, model_version, confidence, input_summary, limitations, human_review_required, created_at",
		tenantID, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var decision Decision
		var limitations []byte
		if err := rows.Scan(&decision.ID, &decision.Action, &decision.ModelVersion, &decision.Confidence,
			&decision.InputSummary, &limitations, &decision.HumanReviewRequired, &decision.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(limitations, &decision.Limitations); err != nil {
			return nil, fmt.Errorf("unmarshal limitations: %w", err)
		}
		out = append(out, decision)
	}
	return out, rows.Err()
}

func (s *Service) buildBaseQuery(prefix, tenantID string, filter Filter) (string, []any) {
	query := prefix + " FROM ai_decision_log WHERE tenant_id = $1"
	args := []any{tenantID}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", len(args)+1)
		args = append(args, filter.Action)
	}
	if filter.HumanReview != nil {
		query += fmt.Sprintf(" AND human_review_required = $%d", len(args)+1)
		args = append(args, *filter.HumanReview)
	}
	return query, args
}
