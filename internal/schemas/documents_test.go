package schemas

import (
	"testing"

	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	form, err := LoadProfile(writeFile(t, "profile.json", validProfile))
	require.NoError(t, err)
	assert.Equal(t, "Bachelor", form.EducationLevel)
	assert.Equal(t, []string{"Python", "SQL"}, form.Skills.Values())
	assert.True(t, form.Sectors.Contains(types.SectorID("technology")))
	assert.True(t, form.RemoteWork)
}

func TestLoadProfile_Invalid(t *testing.T) {
	_, err := LoadProfile(writeFile(t, "profile.json", `{"skills": ["Go"]}`))
	assert.Error(t, err)
}

func TestLoadRecommendations(t *testing.T) {
	path := writeFile(t, "recs.json", `{
	  "recommendations": [
	    {"id": 1, "title": "Data Intern", "sector": "technology", "match_score": 80},
	    {"id": "x2", "title": "Policy Intern", "organization": "Ministry", "match_score": 60}
	  ],
	  "total_found": 2
	}`)

	records, err := LoadRecommendations(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 0.8, records[0].MatchScore, 1e-9)
	assert.Equal(t, types.RecordID("x2"), records[1].ID)
}

func TestLoadRecommendations_SchemaViolation(t *testing.T) {
	_, err := LoadRecommendations(writeFile(t, "recs.json", `{"recommendations": [{"id": 1}]}`))
	assert.Error(t, err)
}

func TestLoadRecommendations_ReportedError(t *testing.T) {
	_, err := LoadRecommendations(writeFile(t, "recs.json", `{"recommendations": [], "error": "offline"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
}

func TestLoadGoalRequirement(t *testing.T) {
	req, err := LoadGoalRequirement(writeFile(t, "goal.json", `{
	  "goal": "Data Scientist",
	  "skills": ["Python", "Statistics"],
	  "learningPath": ["Learn Python"],
	  "marketAnalysis": {"totalInternships": 4}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Statistics"}, req.RequiredSkills)
	require.NotNil(t, req.MarketStats)
	assert.Equal(t, 4, req.MarketStats.TotalInternships)
}

func TestLoadGoalRequirement_MissingFile(t *testing.T) {
	_, err := LoadGoalRequirement("does-not-exist.json")
	assert.Error(t, err)
}
