package main

import (
	"fmt"

	"github.com/jonathan/internship-wizard/internal/observability"
	"github.com/jonathan/internship-wizard/internal/schemas"
	"github.com/jonathan/internship-wizard/internal/skills"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/spf13/cobra"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Compare a profile's skills with a career goal",
	Long: `Computes which of a career goal's required skills the profile already has and
which are missing. Requirements are read from --requirements, or fetched from the
matching service for --goal.`,
	RunE: runGap,
}

var (
	gapProfileFile      string
	gapRequirementsFile string
	gapGoal             string
	gapDescription      string
	gapOutputFile       string
)

// gapReport is the JSON document written by --out.
type gapReport struct {
	Goal         string                 `json:"goal"`
	Requirements *types.GoalRequirement `json:"requirements"`
	skills.GapResult
}

func init() {
	gapCmd.Flags().StringVarP(&gapProfileFile, "profile", "p", "", "Path to profile JSON file (required)")
	gapCmd.Flags().StringVarP(&gapRequirementsFile, "requirements", "r", "", "Path to goal requirements JSON file")
	gapCmd.Flags().StringVarP(&gapGoal, "goal", "g", "", "Career goal to look up (defaults to the profile's career goal)")
	gapCmd.Flags().StringVar(&gapDescription, "description", "", "Free-text description of the goal")
	gapCmd.Flags().StringVarP(&gapOutputFile, "out", "o", "", "Path to write the gap report JSON")

	if err := gapCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	gapCmd.MarkFlagsMutuallyExclusive("requirements", "goal")

	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	profile, err := schemas.LoadProfile(gapProfileFile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	req, err := gapRequirements(cmd, profile)
	if err != nil {
		return err
	}

	gap := skills.Analyze(profile.Skills, req.RequiredSkills)

	if gapOutputFile != "" {
		report := gapReport{Goal: req.Goal, Requirements: req, GapResult: gap}
		if err := writeJSONFile(gapOutputFile, report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote gap report to %s\n", gapOutputFile)
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintGoal(req)
	printer.PrintGap(gap)
	return nil
}

func gapRequirements(cmd *cobra.Command, profile *types.FormSnapshot) (*types.GoalRequirement, error) {
	if gapRequirementsFile != "" {
		req, err := schemas.LoadGoalRequirement(gapRequirementsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load goal requirements: %w", err)
		}
		if req.Goal == "" {
			req.Goal = profile.CareerGoal
		}
		return req, nil
	}

	goal := gapGoal
	if goal == "" {
		goal = profile.CareerGoal
	}
	if goal == "" {
		return nil, fmt.Errorf("no career goal: set --goal, --requirements or career_goal in the profile")
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return nil, err
	}

	ctx := commandContext(cmd)
	req, err := client.FetchGoalRequirements(ctx, goal, gapDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal requirements: %w", err)
	}
	return req, nil
}
