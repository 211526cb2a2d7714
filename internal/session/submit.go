package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
)

// Submit sends the form to the recommender. It is only available on the last
// step once the gate passes, and only one submission may be in flight. On
// failure the wizard reopens so the user can retry; nothing is retried here.
func (s *Session) Submit(ctx context.Context) ([]types.RecommendationRecord, error) {
	if s.recommender == nil {
		return nil, &UnavailableError{Collaborator: "recommender"}
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitPending
	}
	req := types.RecommendationRequest{
		ProfilePayload:     s.form.Payload(),
		NumRecommendations: s.numRecs,
	}
	if err := req.Validate(); err != nil {
		s.mu.Unlock()
		return nil, &validation.InputError{Field: "submission", Message: "profile is incomplete", Cause: err}
	}
	if err := s.ctrl.Submit(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.submitting = true
	s.mu.Unlock()

	s.log.Info("submitting profile",
		slog.Int("skills", len(req.Skills)),
		slog.Int("sectors", len(req.SectorInterests)),
		slog.Int("num_recommendations", req.NumRecommendations),
	)
	records, err := s.recommender.SubmitRecommendationRequest(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.ctrl.ReopenSubmission()
		s.log.Warn("submission failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	s.records = records
	s.summary = results.Summarize(records)
	s.log.Info("recommendations ready",
		slog.Int("count", s.summary.Count),
		slog.Int("average_match", s.summary.AverageMatch),
	)
	out := make([]types.RecommendationRecord, len(records))
	copy(out, records)
	return out, nil
}

// RecommendForGoal asks for internships towards the current career goal using
// the skills owned so far. It needs neither the last step nor a complete
// profile, and it leaves the wizard and the submitted results untouched.
func (s *Session) RecommendForGoal(ctx context.Context) ([]types.RecommendationRecord, error) {
	if s.recommender == nil {
		return nil, &UnavailableError{Collaborator: "recommender"}
	}

	s.mu.Lock()
	if s.form.CareerGoal == "" {
		s.mu.Unlock()
		return nil, ErrNoGoal
	}
	req := types.GoalRecommendationRequest{
		CareerGoal:         s.form.CareerGoal,
		Skills:             s.form.Skills.Values(),
		NumRecommendations: s.goalRecs,
	}
	s.mu.Unlock()

	s.log.Info("requesting goal recommendations",
		slog.String("goal", req.CareerGoal),
		slog.Int("skills", len(req.Skills)),
		slog.Int("num_recommendations", req.NumRecommendations),
	)
	records, err := s.recommender.SubmitGoalRecommendationRequest(ctx, req)
	if err != nil {
		s.log.Warn("goal recommendations failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	return records, nil
}

// Results returns the ranked recommendations and their summary.
func (s *Session) Results() ([]results.Ranked, results.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return results.Rank(s.records), s.summary
}
