package main

import (
	"fmt"

	"github.com/jonathan/internship-wizard/internal/observability"
	"github.com/jonathan/internship-wizard/internal/results"
	"github.com/jonathan/internship-wizard/internal/schemas"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize internship recommendations",
	Long: `Prints the count, average match and distinct sectors of a recommendation list
together with the ranked internships. The list is read from --in, or obtained by
submitting the profile in --profile to the matching service.`,
	RunE: runSummarize,
}

var (
	summarizeInputFile   string
	summarizeProfileFile string
	summarizeNum         int
	summarizeLimit       int
	summarizeOutputFile  string
)

// summaryReport is the JSON document written by --out.
type summaryReport struct {
	Summary         results.Summary  `json:"summary"`
	Recommendations []results.Ranked `json:"recommendations"`
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeInputFile, "in", "i", "", "Path to recommendations JSON file")
	summarizeCmd.Flags().StringVarP(&summarizeProfileFile, "profile", "p", "", "Path to profile JSON file to submit")
	summarizeCmd.Flags().IntVarP(&summarizeNum, "num", "n", 0, "Number of recommendations to request (defaults to config)")
	summarizeCmd.Flags().IntVar(&summarizeLimit, "show", 10, "Number of recommendations to print (0 for all)")
	summarizeCmd.Flags().StringVarP(&summarizeOutputFile, "out", "o", "", "Path to write the summary JSON")

	summarizeCmd.MarkFlagsMutuallyExclusive("in", "profile")
	summarizeCmd.MarkFlagsOneRequired("in", "profile")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	records, err := summarizeRecords(cmd)
	if err != nil {
		return err
	}

	ranked := results.Rank(records)
	summary := results.Summarize(records)

	if summarizeOutputFile != "" {
		if err := writeJSONFile(summarizeOutputFile, summaryReport{Summary: summary, Recommendations: ranked}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote summary to %s\n", summarizeOutputFile)
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSummary(summary)
	printer.PrintRecommendations(ranked, summarizeLimit)
	return nil
}

func summarizeRecords(cmd *cobra.Command) ([]types.RecommendationRecord, error) {
	if summarizeInputFile != "" {
		records, err := schemas.LoadRecommendations(summarizeInputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load recommendations: %w", err)
		}
		return records, nil
	}

	profile, err := schemas.LoadProfile(summarizeProfileFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	num := cfg.NumRecommendations
	if summarizeNum > 0 {
		num = summarizeNum
	}
	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return nil, err
	}

	ctx := commandContext(cmd)
	records, err := client.SubmitRecommendationRequest(ctx, types.RecommendationRequest{
		ProfilePayload:     profile.Payload(),
		NumRecommendations: num,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	return records, nil
}
