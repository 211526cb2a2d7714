// Package observability renders wizard state for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/skills"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
	"github.com/jonathan/internship-wizard/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var stepTitles = map[validation.Step]string{
	validation.StepMethod:   "How would you like to start?",
	validation.StepProfile:  "Education and experience",
	validation.StepSkills:   "Your skills",
	validation.StepSectors:  "Sectors of interest",
	validation.StepGoal:     "Career goal",
	validation.StepLocation: "Location preferences",
}

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// StepTitle returns the heading shown for a step.
func StepTitle(s validation.Step) string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return s.String()
}

// PrintStep outputs the step header and which navigation controls apply.
func (p *Printer) PrintStep(v wizard.View) {
	var sb strings.Builder
	sb.WriteString(progressBar(v.Step))
	sb.WriteString("\n\n")

	var controls []string
	if v.ShowBack {
		controls = append(controls, "back")
	}
	if v.ShowForward {
		controls = append(controls, enabledLabel("next", v.ForwardEnabled))
	}
	if v.ShowSubmit {
		controls = append(controls, enabledLabel("submit", v.SubmitEnabled))
	}
	sb.WriteString("Controls: " + strings.Join(controls, ", "))
	if v.Method != wizard.MethodNone {
		sb.WriteString(fmt.Sprintf("\nMethod:   %s", v.Method))
	}

	title := fmt.Sprintf("STEP %d OF %d: %s", v.Step, validation.TotalSteps, strings.ToUpper(StepTitle(v.Step)))
	p.printBox(title, sb.String())
}

func progressBar(step validation.Step) string {
	var sb strings.Builder
	for s := validation.StepMethod; s <= validation.TotalSteps; s++ {
		switch {
		case s < step:
			sb.WriteString("[x]")
		case s == step:
			sb.WriteString("[>]")
		default:
			sb.WriteString("[ ]")
		}
	}
	return sb.String()
}

func enabledLabel(name string, enabled bool) string {
	if enabled {
		return name
	}
	return name + " (disabled)"
}

// PrintProfile outputs the current form contents.
func (p *Printer) PrintProfile(f *types.FormSnapshot) {
	if f == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Education:  %s\n", orDash(f.EducationLevel)))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", orDash(f.ExperienceLevel)))
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", orDash(strings.Join(f.Skills.Values(), ", "))))

	sectors := f.Sectors.Values()
	ids := make([]string, len(sectors))
	for i, s := range sectors {
		ids[i] = string(s)
	}
	sb.WriteString(fmt.Sprintf("Sectors:    %s\n", orDash(strings.Join(ids, ", "))))
	sb.WriteString(fmt.Sprintf("Goal:       %s\n", orDash(f.CareerGoal)))
	sb.WriteString(fmt.Sprintf("Location:   %s\n", orDash(f.LocationPreference)))
	sb.WriteString(fmt.Sprintf("Remote:     %t", f.RemoteWork))

	p.printBox("PROFILE", sb.String())
}

// PrintExtraction outputs a resume extraction preview.
func (p *Printer) PrintExtraction(r *types.ResumeExtractionResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	if r.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", r.Name))
	}
	if r.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", r.Email))
	}
	sb.WriteString(fmt.Sprintf("Education:  %s\n", orDash(r.EducationLevel)))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", orDash(r.ExperienceLevel)))
	if len(r.Skills) == 0 {
		sb.WriteString("No skills found")
	} else {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(r.Skills)))
		writeList(&sb, r.Skills, maxItemsToShow*2)
	}

	p.printBox("EXTRACTED FROM RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGoal outputs the requirements of a career goal.
func (p *Printer) PrintGoal(req *types.GoalRequirement) {
	if req == nil {
		return
	}

	var sb strings.Builder
	if len(req.RequiredSkills) > 0 {
		sb.WriteString("Required skills:\n")
		writeList(&sb, req.RequiredSkills, maxItemsToShow*2)
	}
	if len(req.LearningPath) > 0 {
		sb.WriteString("\nLearning path:\n")
		for i, step := range req.LearningPath {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}
	if m := req.MarketStats; m != nil {
		sb.WriteString(fmt.Sprintf("\nOpen internships: %d", m.TotalInternships))
		if len(m.HighDemandSkills) > 0 {
			sb.WriteString("\nIn demand: " + strings.Join(m.HighDemandSkills[:min(len(m.HighDemandSkills), maxItemsToShow)], ", "))
		}
	}

	p.printBox("GOAL: "+strings.ToUpper(req.Goal), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGap outputs a skill gap analysis.
func (p *Printer) PrintGap(gap skills.GapResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match: %d%%\n\n", gap.MatchPercentage))

	sb.WriteString(fmt.Sprintf("You have (%d):\n", len(gap.MatchingSkills)))
	writeList(&sb, gap.MatchingSkills, maxItemsToShow*2)
	sb.WriteString(fmt.Sprintf("\nTo learn (%d):\n", len(gap.MissingSkills)))
	writeList(&sb, gap.MissingSkills, maxItemsToShow*2)

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs aggregate statistics for a recommendation list.
func (p *Printer) PrintSummary(s results.Summary) {
	if s.Empty {
		p.printBox("RESULTS", "No internships matched this profile.")
		return
	}
	content := fmt.Sprintf("Internships:      %d\nAverage match:    %d%%\nDistinct sectors: %d",
		s.Count, s.AverageMatch, s.DistinctSectors)
	p.printBox("RESULTS", content)
}

// PrintRecommendations outputs ranked recommendations, at most limit of them
// (all when limit <= 0).
func (p *Printer) PrintRecommendations(ranked []results.Ranked, limit int) {
	if len(ranked) == 0 {
		return
	}
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}

	var sb strings.Builder
	for i := 0; i < limit; i++ {
		r := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", r.Rank, r.Record.Title))
		if r.Record.Organization != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.Record.Organization))
		}
		sb.WriteString(fmt.Sprintf("    Match: %d%% (%s)\n", r.Percent, r.Tier))
		if r.Record.Location != "" {
			sb.WriteString(fmt.Sprintf("    Location: %s\n", r.Record.Location))
		}
		if len(r.Record.RequiredSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(r.Record.RequiredSkills, ", ")))
		}
		if i < limit-1 {
			sb.WriteString("\n")
		}
	}
	if len(ranked) > limit {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(ranked)-limit))
	}

	p.printBox("RECOMMENDED INTERNSHIPS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, items []string, limit int) {
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
