package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/internship-wizard/internal/skills"
	"github.com/jonathan/internship-wizard/internal/types"
)

// SetGoal records the career goal and fetches its requirements. Clearing the
// goal clears the requirements and the gap. A failed lookup leaves no
// requirements loaded and is returned; there is no fallback list.
// If another SetGoal started meanwhile, this one returns ErrStaleGoal and its
// result is discarded.
func (s *Session) SetGoal(ctx context.Context, goal, description string) error {
	goal = strings.TrimSpace(goal)

	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.form.CareerGoal = goal
	s.goalSeq++
	seq := s.goalSeq
	s.goal = nil
	s.gap = nil
	if goal == "" {
		s.mu.Unlock()
		return nil
	}
	if s.goals == nil {
		s.mu.Unlock()
		return &UnavailableError{Collaborator: "goal advisor"}
	}
	s.mu.Unlock()

	req, err := s.goals.FetchGoalRequirements(ctx, goal, description)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.goalSeq {
		return ErrStaleGoal
	}
	if err != nil {
		s.log.Warn("goal requirements unavailable", slog.String("goal", goal), slog.Any("error", err))
		return err
	}
	if req.Goal == "" {
		req.Goal = goal
	}
	s.goal = req
	s.recomputeGap()
	s.log.Debug("goal requirements loaded",
		slog.String("goal", goal),
		slog.Int("required", len(req.RequiredSkills)),
	)
	return nil
}

// Goal returns the loaded requirements, or nil.
func (s *Session) Goal() *types.GoalRequirement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goal == nil {
		return nil
	}
	c := *s.goal
	return &c
}

// Gap returns the current skill gap, or nil when no goal is loaded.
func (s *Session) Gap() *skills.GapResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gap == nil {
		return nil
	}
	c := *s.gap
	return &c
}

// AddGoalSkill adds one required skill to the profile. When a profile store
// is configured the skill is persisted first and the form only changes on
// success. It reports whether the skill was added; an owned skill is a no-op.
func (s *Session) AddGoalSkill(ctx context.Context, skill string) (bool, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false, nil
	}

	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	if s.form.Skills.Contains(skill) {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	return s.addProfileSkills(ctx, []string{skill})
}

// AddAllMissing adds every required skill the profile lacks and returns how
// many were added. Nothing missing is a no-op.
func (s *Session) AddAllMissing(ctx context.Context) (int, error) {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if s.goal == nil {
		s.mu.Unlock()
		return 0, ErrNoGoal
	}
	missing := skills.Missing(s.form.Skills, s.goal.RequiredSkills)
	s.mu.Unlock()

	if len(missing) == 0 {
		return 0, nil
	}
	if _, err := s.addProfileSkills(ctx, missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}

func (s *Session) addProfileSkills(ctx context.Context, add []string) (bool, error) {
	if s.profiles != nil {
		if err := s.profiles.AddProfileSkills(ctx, add...); err != nil {
			s.log.Warn("failed to add profile skills", slog.Any("error", err))
			return false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	added := s.form.Skills.AddAll(add...) > 0
	s.recomputeGap()
	return added, nil
}

// SaveGoal stores the current goal and its requirements.
func (s *Session) SaveGoal(ctx context.Context, description string) error {
	if s.profiles == nil {
		return &UnavailableError{Collaborator: "profile store"}
	}
	s.mu.Lock()
	if s.goal == nil {
		s.mu.Unlock()
		return ErrNoGoal
	}
	goal := s.form.CareerGoal
	req := *s.goal
	s.mu.Unlock()

	return s.profiles.SaveGoal(ctx, goal, description, &req)
}
