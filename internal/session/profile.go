package session

import (
	"context"
	"log/slog"

	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/wizard"
)

// LoadProfile replaces the form with the stored profile. It reports false
// when no profile is stored, leaving the form as it was. When the stored
// career goal differs from the current one, the loaded requirements are
// dropped and any goal lookup in flight goes stale.
func (s *Session) LoadProfile(ctx context.Context) (bool, error) {
	if s.profiles == nil {
		return false, &UnavailableError{Collaborator: "profile store"}
	}
	stored, err := s.profiles.LoadProfile(ctx)
	if err != nil {
		return false, err
	}
	if stored == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	// The controller holds s.form, so it is updated in place.
	s.form.EducationLevel = stored.EducationLevel
	s.form.ExperienceLevel = stored.ExperienceLevel
	if stored.CareerGoal != s.form.CareerGoal {
		s.goalSeq++
		s.goal = nil
	}
	s.form.CareerGoal = stored.CareerGoal
	s.form.LocationPreference = stored.LocationPreference
	s.form.RemoteWork = stored.RemoteWork
	s.form.Skills.Replace(stored.Skills.Values()...)
	s.form.Sectors.Replace(stored.Sectors.Values()...)
	s.recomputeGap()
	s.log.Info("profile loaded", slog.Int("skills", s.form.Skills.Len()))
	return true, nil
}

// SaveProfile stores the current form.
func (s *Session) SaveProfile(ctx context.Context) error {
	if s.profiles == nil {
		return &UnavailableError{Collaborator: "profile store"}
	}
	s.mu.Lock()
	snapshot := s.form.Clone()
	s.mu.Unlock()

	if err := s.profiles.SaveProfile(ctx, snapshot); err != nil {
		s.log.Warn("failed to save profile", slog.Any("error", err))
		return err
	}
	return nil
}

// Form returns a copy of the current form.
func (s *Session) Form() *types.FormSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// View returns the navigation state for rendering.
func (s *Session) View() wizard.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.View()
}
