package session

import (
	"context"

	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/types"
)

// Catalog supplies the sector cards and the skill suggestion source.
type Catalog interface {
	FetchSectors(ctx context.Context) ([]types.Sector, error)
	FetchSkillCatalog(ctx context.Context) ([]string, error)
}

// Recommender turns a submitted profile into ranked internships.
type Recommender interface {
	SubmitRecommendationRequest(ctx context.Context, req types.RecommendationRequest) ([]types.RecommendationRecord, error)
	SubmitGoalRecommendationRequest(ctx context.Context, req types.GoalRecommendationRequest) ([]types.RecommendationRecord, error)
}

// GoalAdvisor describes what a career goal requires.
type GoalAdvisor interface {
	FetchGoalRequirements(ctx context.Context, goal, description string) (*types.GoalRequirement, error)
}

// Extractor recovers a structured profile from a resume file.
type Extractor interface {
	UploadResume(ctx context.Context, u *ingestion.Upload) (*types.ResumeExtractionResult, error)
}

// ProfileStore persists the candidate profile and career goal.
type ProfileStore interface {
	LoadProfile(ctx context.Context) (*types.FormSnapshot, error)
	SaveProfile(ctx context.Context, f *types.FormSnapshot) error
	AddProfileSkills(ctx context.Context, skills ...string) error
	SaveGoal(ctx context.Context, goal, description string, req *types.GoalRequirement) error
}
