package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/internship-wizard/internal/schemas"
	rootschemas "github.com/jonathan/internship-wizard/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against an embedded schema",
	Long: `Checks a profile, recommendation list or goal requirement document before it is
fed to gap, summarize or profile save. --schema takes profile, recommendations or
goal_requirement.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

var schemaNames = map[string]string{
	"profile":          rootschemas.Profile,
	"recommendations":  rootschemas.Recommendations,
	"goal_requirement": rootschemas.GoalRequirement,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema to validate against (required)")
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "Path to JSON file (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	schemaName, ok := schemaNames[strings.ToLower(validateSchema)]
	if !ok {
		return fmt.Errorf("unknown schema %q (use profile, recommendations or goal_requirement)", validateSchema)
	}

	err := schemas.ValidateJSON(schemaName, validateJSON)
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), validationErr.Error())
		return fmt.Errorf("%s does not match the %s schema", validateJSON, validateSchema)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s matches the %s schema\n", validateJSON, validateSchema)
	return nil
}
