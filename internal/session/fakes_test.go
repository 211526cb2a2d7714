package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/types"
)

var errBoom = errors.New("boom")

type fakeCatalog struct {
	sectors    []types.Sector
	catalog    []string
	sectorsErr error
	catalogErr error
}

func (f *fakeCatalog) FetchSectors(context.Context) ([]types.Sector, error) {
	return f.sectors, f.sectorsErr
}

func (f *fakeCatalog) FetchSkillCatalog(context.Context) ([]string, error) {
	return f.catalog, f.catalogErr
}

type fakeRecommender struct {
	mu        sync.Mutex
	calls     []types.RecommendationRequest
	goalCalls []types.GoalRecommendationRequest
	records   []types.RecommendationRecord
	err       error
	// gate, when set, blocks each call until it receives a value.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeRecommender) SubmitRecommendationRequest(ctx context.Context, req types.RecommendationRequest) ([]types.RecommendationRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.records, f.err
}

func (f *fakeRecommender) SubmitGoalRecommendationRequest(_ context.Context, req types.GoalRecommendationRequest) ([]types.RecommendationRecord, error) {
	f.mu.Lock()
	f.goalCalls = append(f.goalCalls, req)
	f.mu.Unlock()
	return f.records, f.err
}

type fakeGoals struct {
	reqs map[string]*types.GoalRequirement
	err  error
}

func (f *fakeGoals) FetchGoalRequirements(_ context.Context, goal, _ string) (*types.GoalRequirement, error) {
	if f.err != nil {
		return nil, f.err
	}
	req, ok := f.reqs[goal]
	if !ok {
		return nil, errBoom
	}
	c := *req
	return &c, nil
}

// blockingGoals signals started on each lookup and answers once release is
// closed.
type blockingGoals struct {
	*fakeGoals
	started chan struct{}
	release chan struct{}
}

func (f *blockingGoals) FetchGoalRequirements(ctx context.Context, goal, description string) (*types.GoalRequirement, error) {
	f.started <- struct{}{}
	<-f.release
	return f.fakeGoals.FetchGoalRequirements(ctx, goal, description)
}

// slowCatalog fails the sector fetch at once and answers the skill catalog
// after delay, unless ctx is cancelled first.
type slowCatalog struct {
	delay   time.Duration
	catalog []string
}

func (f *slowCatalog) FetchSectors(context.Context) ([]types.Sector, error) {
	return nil, errBoom
}

func (f *slowCatalog) FetchSkillCatalog(ctx context.Context) ([]string, error) {
	select {
	case <-time.After(f.delay):
		return f.catalog, nil
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

type fakeExtractor struct {
	result *types.ResumeExtractionResult
	err    error
}

func (f *fakeExtractor) UploadResume(context.Context, *ingestion.Upload) (*types.ResumeExtractionResult, error) {
	return f.result, f.err
}

type fakeProfiles struct {
	stored  *types.FormSnapshot
	added   [][]string
	goals   []string
	addErr  error
	loadErr error
	saveErr error
	saved   *types.FormSnapshot
}

func (f *fakeProfiles) LoadProfile(context.Context) (*types.FormSnapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, nil
	}
	return f.stored.Clone(), nil
}

func (f *fakeProfiles) SaveProfile(_ context.Context, form *types.FormSnapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = form
	return nil
}

func (f *fakeProfiles) AddProfileSkills(_ context.Context, skills ...string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, skills)
	return nil
}

func (f *fakeProfiles) SaveGoal(_ context.Context, goal, _ string, _ *types.GoalRequirement) error {
	f.goals = append(f.goals, goal)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func pdfUpload() *ingestion.Upload {
	return &ingestion.Upload{Filename: "cv.pdf", Data: pdfBytes}
}
