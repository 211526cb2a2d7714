package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/skills"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
	"github.com/jonathan/internship-wizard/internal/wizard"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultNumRecommendations is the submission size when Options leaves it zero.
	DefaultNumRecommendations = 5
	// DefaultGoalNumRecommendations is the goal-driven request size when
	// Options leaves it zero.
	DefaultGoalNumRecommendations = 20
)

// Options wires a Session to its collaborators. Any collaborator may be nil;
// operations that need a missing one fail with *UnavailableError.
type Options struct {
	Catalog     Catalog
	Recommender Recommender
	Goals       GoalAdvisor
	Extractor   Extractor
	Profiles    ProfileStore

	NumRecommendations     int
	GoalNumRecommendations int
	Logger                 *slog.Logger
}

// Session is the single owner of a wizard run. Every exported method takes
// the session lock, applies a decision from the pure packages and releases
// the lock before any collaborator call.
type Session struct {
	mu  sync.Mutex
	id  uuid.UUID
	log *slog.Logger

	catalog     Catalog
	recommender Recommender
	goals       GoalAdvisor
	extractor   Extractor
	profiles    ProfileStore
	numRecs     int
	goalRecs    int

	form   *types.FormSnapshot
	ctrl   *wizard.Controller
	upload *ingestion.Pipeline

	sectors     []types.Sector
	skillSource []string

	goal    *types.GoalRequirement
	goalSeq uint64
	gap     *skills.GapResult

	submitting bool
	records    []types.RecommendationRecord
	summary    results.Summary
}

// New returns a session on the first step with an empty form.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	numRecs := opts.NumRecommendations
	if numRecs <= 0 {
		numRecs = DefaultNumRecommendations
	}
	goalRecs := opts.GoalNumRecommendations
	if goalRecs <= 0 {
		goalRecs = DefaultGoalNumRecommendations
	}

	id := uuid.New()
	form := types.NewFormSnapshot()
	return &Session{
		id:          id,
		log:         logger.With(slog.String("session_id", id.String())),
		catalog:     opts.Catalog,
		recommender: opts.Recommender,
		goals:       opts.Goals,
		extractor:   opts.Extractor,
		profiles:    opts.Profiles,
		numRecs:     numRecs,
		goalRecs:    goalRecs,
		form:        form,
		ctrl:        wizard.New(form),
		upload:      ingestion.NewPipeline(),
		summary:     results.Summary{Empty: true},
	}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Bootstrap loads the sector cards and the skill catalog concurrently.
// Whatever loaded is kept even when the other fetch fails, so one failure
// does not cancel the other request.
func (s *Session) Bootstrap(ctx context.Context) error {
	if s.catalog == nil {
		return &UnavailableError{Collaborator: "catalog"}
	}

	var sectors []types.Sector
	var catalog []string
	var sectorsOK, catalogOK bool

	var g errgroup.Group
	g.Go(func() error {
		out, err := s.catalog.FetchSectors(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sectors: %w", err)
		}
		sectors, sectorsOK = out, true
		return nil
	})
	g.Go(func() error {
		out, err := s.catalog.FetchSkillCatalog(ctx)
		if err != nil {
			return fmt.Errorf("failed to load skill catalog: %w", err)
		}
		catalog, catalogOK = out, true
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sectorsOK {
		s.sectors = sectors
	}
	if catalogOK {
		s.skillSource = catalog
	}
	if err != nil {
		s.log.Warn("bootstrap incomplete", slog.Any("error", err))
		return err
	}
	s.log.Debug("bootstrap complete",
		slog.Int("sectors", len(sectors)),
		slog.Int("catalog", len(catalog)),
	)
	return nil
}

// Sectors returns the loaded sector cards.
func (s *Session) Sectors() []types.Sector {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Sector, len(s.sectors))
	copy(out, s.sectors)
	return out
}

// Suggestions returns the skills to offer on the skills step.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return skills.Suggest(s.skillSource, s.form.Sectors)
}

// editable reports whether the form may still change. Callers hold s.mu.
func (s *Session) editable() error {
	if s.submitting {
		return ErrSubmitPending
	}
	if s.ctrl.Submitted() {
		return wizard.ErrSubmitted
	}
	return nil
}

// recomputeGap refreshes the gap after the owned skills or the goal changed.
// Callers hold s.mu.
func (s *Session) recomputeGap() {
	if s.goal == nil {
		s.gap = nil
		return
	}
	gap := skills.Analyze(s.form.Skills, s.goal.RequiredSkills)
	s.gap = &gap
}

// SetEducation records the education level.
func (s *Session) SetEducation(level string) error {
	return s.setText(func(f *types.FormSnapshot, v string) { f.EducationLevel = v }, level)
}

// SetExperience records the experience level.
func (s *Session) SetExperience(level string) error {
	return s.setText(func(f *types.FormSnapshot, v string) { f.ExperienceLevel = v }, level)
}

// SetLocation records the preferred location.
func (s *Session) SetLocation(location string) error {
	return s.setText(func(f *types.FormSnapshot, v string) { f.LocationPreference = v }, location)
}

// SetRemoteWork records whether remote internships are wanted.
func (s *Session) SetRemoteWork(remote bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.form.RemoteWork = remote
	return nil
}

func (s *Session) setText(set func(*types.FormSnapshot, string), value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	set(s.form, strings.TrimSpace(value))
	return nil
}

// AddSkill adds a custom skill. Surrounding space is trimmed and blank text
// is a no-op. It reports whether the skill was newly added.
func (s *Session) AddSkill(skill string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false, nil
	}
	added := s.form.Skills.Add(skill)
	s.recomputeGap()
	return added, nil
}

// RemoveSkill removes a skill and reports whether it was present.
func (s *Session) RemoveSkill(skill string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	removed := s.form.Skills.Remove(skill)
	s.recomputeGap()
	return removed, nil
}

// ToggleSkill flips a suggested skill and reports whether it is now selected.
func (s *Session) ToggleSkill(skill string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false, nil
	}
	present := s.form.Skills.Toggle(skill)
	s.recomputeGap()
	return present, nil
}

// ToggleSector flips a sector card and reports whether it is now selected.
// Once sector cards are loaded, unknown ids are rejected.
func (s *Session) ToggleSector(id types.SectorID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	if !s.knownSector(id) {
		return false, &validation.InputError{Field: "sector_interests", Message: fmt.Sprintf("unknown sector %q", id)}
	}
	return s.form.Sectors.Toggle(id), nil
}

func (s *Session) knownSector(id types.SectorID) bool {
	if id == "" {
		return false
	}
	if len(s.sectors) == 0 {
		return true
	}
	for _, sector := range s.sectors {
		if sector.ID == id {
			return true
		}
	}
	return false
}

// ChooseMethod enters the manual or resume branch. Any upload in flight is
// abandoned so its late result is dropped.
func (s *Session) ChooseMethod(m wizard.InputMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if err := s.ctrl.ChooseMethod(m); err != nil {
		return err
	}
	s.upload.Reset()
	s.log.Debug("input method chosen", slog.String("method", string(m)))
	return nil
}

// Advance moves forward when the current step passes its gate.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitPending
	}
	return s.ctrl.Advance()
}

// Retreat returns to the previously visited step.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitPending
	}
	return s.ctrl.Retreat()
}
