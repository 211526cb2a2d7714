package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
)

// FetchSectors returns the selectable sector cards.
func (c *Client) FetchSectors(ctx context.Context) ([]types.Sector, error) {
	var sectors []types.Sector
	if err := c.getJSON(ctx, "fetch sectors", "/api/sectors", nil, &sectors); err != nil {
		return nil, err
	}
	for i := range sectors {
		if err := sectors[i].Validate(); err != nil {
			return nil, &Error{
				Op:      "fetch sectors",
				URL:     c.endpoint("/api/sectors", nil),
				Message: fmt.Sprintf("sector %d is malformed", i),
				Cause:   err,
			}
		}
	}
	return sectors, nil
}

// FetchSkillCatalog returns the skill names used as suggestions.
func (c *Client) FetchSkillCatalog(ctx context.Context) ([]string, error) {
	var catalog []string
	if err := c.getJSON(ctx, "fetch skills", "/api/skills", nil, &catalog); err != nil {
		return nil, err
	}
	out := catalog[:0]
	for _, s := range catalog {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

type goalQuery struct {
	Goal        string `json:"goal"`
	Description string `json:"description,omitempty"`
}

// FetchGoalRequirements asks the service what a career goal requires.
func (c *Client) FetchGoalRequirements(ctx context.Context, goal, description string) (*types.GoalRequirement, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, &validation.InputError{Field: "career_goal", Message: "goal is required"}
	}
	var req types.GoalRequirement
	if err := c.postJSON(ctx, "fetch goal requirements", "/api/goal-requirements", nil,
		goalQuery{Goal: goal, Description: description}, &req); err != nil {
		return nil, err
	}
	if req.Goal == "" {
		req.Goal = goal
	}
	return &req, nil
}

// SubmitRecommendationRequest submits the profile and returns the ranked
// records in the order the service produced them. The request is checked
// locally first; a request that would be refused never leaves the process.
func (c *Client) SubmitRecommendationRequest(ctx context.Context, req types.RecommendationRequest) ([]types.RecommendationRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, &validation.InputError{Field: "submission", Message: "profile is incomplete", Cause: err}
	}
	return c.recommend(ctx, "submit recommendations", req)
}

// SubmitGoalRecommendationRequest asks for internships towards a career goal.
// It uses the same endpoint and record handling as a profile submission.
func (c *Client) SubmitGoalRecommendationRequest(ctx context.Context, req types.GoalRecommendationRequest) ([]types.RecommendationRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, &validation.InputError{Field: "career_goal", Message: "career goal is required", Cause: err}
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}
	return c.recommend(ctx, "goal recommendations", req)
}

func (c *Client) recommend(ctx context.Context, op string, body any) ([]types.RecommendationRecord, error) {
	var resp types.RecommendationResponse
	if err := c.postJSON(ctx, op, "/api/recommendations", nil, body, &resp); err != nil {
		return nil, err
	}
	records := resp.Recommendations
	for i := range records {
		records[i].Normalize()
		if err := records[i].Validate(); err != nil {
			return nil, &Error{
				Op:      op,
				URL:     c.endpoint("/api/recommendations", nil),
				Message: fmt.Sprintf("recommendation %d is malformed", i),
				Cause:   err,
			}
		}
	}
	if records == nil {
		records = []types.RecommendationRecord{}
	}
	c.log.Info("recommendations received",
		slog.String("op", op),
		slog.Int("count", len(records)),
		slog.Int("total_found", resp.TotalFound),
	)
	return records, nil
}

// UploadResume sends the file for extraction. The upload guard runs first so
// disallowed files are refused without a network call.
func (c *Client) UploadResume(ctx context.Context, u *ingestion.Upload) (*types.ResumeExtractionResult, error) {
	if err := ingestion.CheckUpload(u); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, u.Filename))
	header.Set("Content-Type", u.MIMEType())
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, &Error{Op: "upload resume", URL: c.endpoint("/api/extract-skills", nil), Message: "failed to build form", Cause: err}
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, &Error{Op: "upload resume", URL: c.endpoint("/api/extract-skills", nil), Message: "failed to build form", Cause: err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Op: "upload resume", URL: c.endpoint("/api/extract-skills", nil), Message: "failed to build form", Cause: err}
	}

	body, err := c.do(ctx, request{
		op:          "upload resume",
		method:      http.MethodPost,
		path:        "/api/extract-skills",
		body:        &buf,
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	var result types.ResumeExtractionResult
	if err := c.decode("upload resume", "/api/extract-skills", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadProfile returns the stored profile, or nil when the user has none.
func (c *Client) LoadProfile(ctx context.Context) (*types.FormSnapshot, error) {
	var payload types.ProfilePayload
	err := c.getJSON(ctx, "load profile", "/api/profile", c.userQuery(), &payload)
	var httpErr *Error
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if isBlankProfile(payload) {
		return nil, nil
	}
	return payload.Snapshot(), nil
}

// SaveProfile stores the snapshot as the user's profile.
func (c *Client) SaveProfile(ctx context.Context, f *types.FormSnapshot) error {
	if f == nil {
		return &validation.InputError{Field: "profile", Message: "profile is empty"}
	}
	return c.postJSON(ctx, "save profile", "/api/profile", c.userQuery(), f.Payload(), nil)
}

// AddProfileSkills appends skills to the stored profile. One skill is sent
// as {"skill": ...}, several as {"skills": [...]}.
func (c *Client) AddProfileSkills(ctx context.Context, skills ...string) error {
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	var body any
	switch len(cleaned) {
	case 0:
		return &validation.InputError{Field: "skills", Message: "no skills to add"}
	case 1:
		body = map[string]string{"skill": cleaned[0]}
	default:
		body = map[string][]string{"skills": cleaned}
	}
	return c.postJSON(ctx, "add profile skills", "/api/profile/skills", c.userQuery(), body, nil)
}

type savedGoal struct {
	Goal         string             `json:"goal"`
	Description  string             `json:"description,omitempty"`
	Requirements *types.MarketStats `json:"marketAnalysis,omitempty"`
	Skills       []string           `json:"skills,omitempty"`
	LearningPath []string           `json:"learningPath,omitempty"`
}

// SaveGoal records the user's career goal together with its requirements.
func (c *Client) SaveGoal(ctx context.Context, goal, description string, req *types.GoalRequirement) error {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return &validation.InputError{Field: "career_goal", Message: "goal is required"}
	}
	body := savedGoal{Goal: goal, Description: description}
	if req != nil {
		body.Requirements = req.MarketStats
		body.Skills = req.RequiredSkills
		body.LearningPath = req.LearningPath
	}
	return c.postJSON(ctx, "save goal", "/api/goals", c.userQuery(), body, nil)
}

func isBlankProfile(p types.ProfilePayload) bool {
	return p.EducationLevel == "" && p.ExperienceLevel == "" && len(p.Skills) == 0 &&
		len(p.SectorInterests) == 0 && p.CareerGoal == "" && p.LocationPreference == ""
}
