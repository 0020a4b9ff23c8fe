package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GenerateScorecard composes the four capability signals into one weighted
// score. The three cycle-scoped calculators and the latest calibration
// alignment have no data dependency on each other and run concurrently;
// only the weighted sum waits on all four. The result replaces any prior
// scorecard for the same (manager, cycle).
func (s *Service) GenerateScorecard(ctx context.Context, tenantID, managerID, cycleID string) (CapabilityScorecard, error) {
	var (
		timeliness     TimelinessMetrics
		commentQuality CommentBatchMetrics
		variance       VarianceMetrics
		calibration    CalibrationAlignment
		hasCalibration bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		timeliness, err = s.TimelinessMetrics(gctx, tenantID, managerID, cycleID)
		return err
	})
	g.Go(func() error {
		var err error
		commentQuality, err = s.CommentQualityMetrics(gctx, tenantID, managerID, cycleID)
		return err
	})
	g.Go(func() error {
		var err error
		variance, err = s.VarianceMetrics(gctx, tenantID, managerID, cycleID)
		return err
	})
	g.Go(func() error {
		var err error
		calibration, hasCalibration, err = s.store.LatestAlignment(gctx, tenantID, managerID)
		if err != nil {
			return fmt.Errorf("load alignment: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return CapabilityScorecard{}, err
	}

	// A manager with no written comments, or who has never been through
	// calibration, gets the neutral default rather than a penalty.
	commentScore := DefaultCommentQualityScore
	if commentQuality.CommentsAnalyzed > 0 {
		commentScore = commentQuality.AvgOverallScore
	}
	calibrationScore := DefaultCalibrationScore
	breakdown := ScorecardBreakdown{
		Timeliness:     timeliness,
		CommentQuality: commentQuality,
		Variance:       variance,
	}
	if hasCalibration {
		calibrationScore = calibration.AlignmentScore
		breakdown.Calibration = &calibration
	}

	scorecard := CapabilityScorecard{
		ManagerID:            managerID,
		CycleID:              cycleID,
		TimelinessScore:      timeliness.Score,
		CommentQualityScore:  commentScore,
		DifferentiationScore: variance.DifferentiationScore,
		CalibrationScore:     calibrationScore,
		Breakdown:            breakdown,
	}
	scorecard.OverallScore = round2(
		scorecard.TimelinessScore*WeightTimeliness +
			scorecard.CommentQualityScore*WeightCommentQuality +
			scorecard.DifferentiationScore*WeightDifferentiation +
			scorecard.CalibrationScore*WeightCalibration)
	scorecard.Trend = TrendStable
	if scorecard.OverallScore < 50 {
		scorecard.Trend = TrendDeclining
	}

	if err := s.store.UpsertScorecard(ctx, tenantID, scorecard); err != nil {
		return CapabilityScorecard{}, fmt.Errorf("persist scorecard: %w", err)
	}
	return scorecard, nil
}
