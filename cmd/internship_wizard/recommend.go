package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/internship-wizard/internal/config"
	"github.com/jonathan/internship-wizard/internal/observability"
	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/schemas"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Find internships for a career goal",
	Long: `Asks the matching service for internships that lead towards a career goal,
given the skills owned so far. Unlike summarize --profile, no education level or
sector interests are needed. Skills come from --skills or from the profile in
--profile, whose career goal is used when --goal is omitted.`,
	RunE: runRecommend,
}

var (
	recommendGoal        string
	recommendProfileFile string
	recommendSkills      []string
	recommendNum         int
	recommendLimit       int
	recommendOutputFile  string
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendGoal, "goal", "g", "", "Career goal (defaults to the profile's career goal)")
	recommendCmd.Flags().StringVarP(&recommendProfileFile, "profile", "p", "", "Path to profile JSON file supplying the skills")
	recommendCmd.Flags().StringSliceVarP(&recommendSkills, "skills", "s", nil, "Comma-separated skills owned so far")
	recommendCmd.Flags().IntVarP(&recommendNum, "num", "n", config.GoalNumRecommendations, "Number of recommendations to request")
	recommendCmd.Flags().IntVar(&recommendLimit, "show", 10, "Number of recommendations to print (0 for all)")
	recommendCmd.Flags().StringVarP(&recommendOutputFile, "out", "o", "", "Path to write the summary JSON")

	recommendCmd.MarkFlagsMutuallyExclusive("skills", "profile")
	recommendCmd.MarkFlagsOneRequired("goal", "profile")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	req, err := goalRecommendationRequest()
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}

	records, err := client.SubmitGoalRecommendationRequest(commandContext(cmd), req)
	if err != nil {
		return fmt.Errorf("failed to get recommendations: %w", err)
	}

	ranked := results.Rank(records)
	summary := results.Summarize(records)

	if recommendOutputFile != "" {
		if err := writeJSONFile(recommendOutputFile, summaryReport{Summary: summary, Recommendations: ranked}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote recommendations to %s\n", recommendOutputFile)
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Internships for %s\n", req.CareerGoal)
	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSummary(summary)
	printer.PrintRecommendations(ranked, recommendLimit)
	return nil
}

func goalRecommendationRequest() (types.GoalRecommendationRequest, error) {
	req := types.GoalRecommendationRequest{
		CareerGoal:         strings.TrimSpace(recommendGoal),
		Skills:             []string{},
		NumRecommendations: recommendNum,
	}

	if recommendProfileFile != "" {
		profile, err := schemas.LoadProfile(recommendProfileFile)
		if err != nil {
			return req, fmt.Errorf("failed to load profile: %w", err)
		}
		req.Skills = profile.Skills.Values()
		if req.CareerGoal == "" {
			req.CareerGoal = profile.CareerGoal
		}
	} else {
		for _, s := range recommendSkills {
			if s = strings.TrimSpace(s); s != "" {
				req.Skills = append(req.Skills, s)
			}
		}
	}

	if req.CareerGoal == "" {
		return req, fmt.Errorf("career goal is required (use --goal or a profile with career_goal)")
	}
	return req, nil
}
