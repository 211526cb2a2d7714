package main

import (
	"fmt"

	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/observability"
	"github.com/spf13/cobra"
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Extract profile details from a resume file",
	Long: `Uploads a PDF, DOC or DOCX resume (at most 5 MB) to the matching service and
prints the skills, education and experience it recovered. The file type and size
are checked locally before anything is sent.`,
	RunE: runExtractResume,
}

var (
	extractResumeFile       string
	extractResumeOutputFile string
)

func init() {
	extractResumeCmd.Flags().StringVarP(&extractResumeFile, "file", "f", "", "Path to resume file (required)")
	extractResumeCmd.Flags().StringVarP(&extractResumeOutputFile, "out", "o", "", "Path to write the extraction JSON")

	if err := extractResumeCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(cmd *cobra.Command, _ []string) error {
	upload, err := ingestion.LoadUpload(extractResumeFile)
	if err != nil {
		return err
	}
	if err := ingestion.CheckUpload(upload); err != nil {
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

	ctx := commandContext(cmd)
	result, err := client.UploadResume(ctx, upload)
	if err != nil {
		return fmt.Errorf("failed to extract resume: %w", err)
	}
	if result.Error != "" {
		return fmt.Errorf("failed to extract resume: %s", result.Error)
	}

	if extractResumeOutputFile != "" {
		if err := writeJSONFile(extractResumeOutputFile, result); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote extraction to %s\n", extractResumeOutputFile)
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintExtraction(result)
	return nil
}
