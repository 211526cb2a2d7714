package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/skills"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
	"github.com/jonathan/internship-wizard/internal/wizard"
	"github.com/stretchr/testify/assert"
)

func TestPrintStep(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStep(wizard.View{
		Step:           validation.StepSkills,
		ShowBack:       true,
		ShowForward:    true,
		ForwardEnabled: false,
		Method:         wizard.MethodManual,
	})
	output := buf.String()

	assert.Contains(t, output, "STEP 3 OF 6")
	assert.Contains(t, output, "YOUR SKILLS")
	assert.Contains(t, output, "[x][x][>][ ][ ][ ]")
	assert.Contains(t, output, "back, next (disabled)")
	assert.Contains(t, output, "manual")
	assert.NotContains(t, output, "submit")
}

func TestPrintStep_LastStep(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStep(wizard.View{Step: validation.StepLocation, ShowBack: true, ShowSubmit: true, SubmitEnabled: true})

	assert.Contains(t, buf.String(), "back, submit")
	assert.NotContains(t, buf.String(), "next")
}

func TestStepTitle_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", StepTitle(validation.Step(9)))
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	f := types.NewFormSnapshot()
	f.EducationLevel = "Bachelor"
	f.Skills.AddAll("Go", "SQL")
	f.Sectors.Add("technology")
	p.PrintProfile(f)
	output := buf.String()

	assert.Contains(t, output, "PROFILE")
	assert.Contains(t, output, "Bachelor")
	assert.Contains(t, output, "Go, SQL")
	assert.Contains(t, output, "technology")
	assert.Contains(t, output, "Experience: -")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(&types.ResumeExtractionResult{Name: "Asha", Skills: []string{"Python"}})
	assert.Contains(t, buf.String(), "Asha")
	assert.Contains(t, buf.String(), "Skills (1)")

	buf.Reset()
	p.PrintExtraction(&types.ResumeExtractionResult{})
	assert.Contains(t, buf.String(), "No skills found")
}

func TestPrintGoal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGoal(&types.GoalRequirement{
		Goal:           "Data Scientist",
		RequiredSkills: []string{"Python", "Statistics"},
		LearningPath:   []string{"Learn Python", "Practice SQL"},
		MarketStats:    &types.MarketStats{TotalInternships: 12, HighDemandSkills: []string{"Python"}},
	})
	output := buf.String()

	assert.Contains(t, output, "GOAL: DATA SCIENTIST")
	assert.Contains(t, output, "Statistics")
	assert.Contains(t, output, "2. Practice SQL")
	assert.Contains(t, output, "Open internships: 12")
}

func TestPrintGap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGap(skills.GapResult{MatchingSkills: []string{"A"}, MissingSkills: []string{"C"}, MatchPercentage: 50})
	output := buf.String()

	assert.Contains(t, output, "Match: 50%")
	assert.Contains(t, output, "You have (1)")
	assert.Contains(t, output, "To learn (1)")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(results.Summary{Count: 2, AverageMatch: 70, DistinctSectors: 2})
	assert.Contains(t, buf.String(), "Average match:    70%")

	buf.Reset()
	p.PrintSummary(results.Summary{Empty: true})
	assert.Contains(t, buf.String(), "No internships matched")
	assert.NotContains(t, buf.String(), "Average")
}

func TestPrintRecommendations_Limit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	records := make([]types.RecommendationRecord, 7)
	for i := range records {
		records[i] = types.RecommendationRecord{ID: types.RecordID(fmt.Sprint(i)), Title: fmt.Sprintf("Intern %d", i), MatchScore: 0.85}
	}
	p.PrintRecommendations(results.Rank(records), 5)
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDED INTERNSHIPS")
	assert.Contains(t, output, "#1  Intern 0")
	assert.Contains(t, output, "Match: 85% (strong)")
	assert.Contains(t, output, "... and 2 more")
	assert.False(t, strings.Contains(output, "Intern 6"))
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendations(nil, 0)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("x", 200))
	assert.Contains(t, buf.String(), "...")
}
