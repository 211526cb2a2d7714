package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/internship-wizard/internal/config"
	"github.com/jonathan/internship-wizard/internal/db"
	"github.com/jonathan/internship-wizard/internal/observability"
	"github.com/jonathan/internship-wizard/internal/schemas"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Read and update the stored candidate profile",
	Long: `Manages the stored profile. Profiles live in PostgreSQL when --db-url (or
DATABASE_URL) is set and in the matching service otherwise.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile",
	RunE:  runProfileShow,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store a profile document",
	RunE:  runProfileSave,
}

var profileAddSkillsCmd = &cobra.Command{
	Use:   "add-skills <skill>...",
	Short: "Append skills to the stored profile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfileAddSkills,
}

var profileGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Print the saved career goal (database only)",
	RunE:  runProfileGoal,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored profile and goal (database only)",
	RunE:  runProfileDelete,
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the profile tables",
	RunE:  runInitDB,
}

var (
	profileInputFile  string
	profileOutputFile string
)

var errNoDatabase = errors.New("database URL is required (set DATABASE_URL environment variable or use --db-url flag)")

func init() {
	profileShowCmd.Flags().StringVarP(&profileOutputFile, "out", "o", "", "Path to write the profile JSON")
	profileSaveCmd.Flags().StringVarP(&profileInputFile, "in", "i", "", "Path to profile JSON file (required)")
	if err := profileSaveCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	profileCmd.AddCommand(profileShowCmd, profileSaveCmd, profileAddSkillsCmd, profileGoalCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd, initDBCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}
	store, closeStore, err := openProfiles(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer closeStore()

	profile, err := store.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No stored profile for %s\n", cfg.UserID)
		return nil
	}

	if profileOutputFile != "" {
		if err := writeJSONFile(profileOutputFile, profile.Payload()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote profile to %s\n", profileOutputFile)
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(profile)
	return nil
}

func runProfileSave(cmd *cobra.Command, _ []string) error {
	profile, err := schemas.LoadProfile(profileInputFile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	ctx := commandContext(cmd)
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}
	store, closeStore, err := openProfiles(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s (%d skills, %d sectors)\n",
		cfg.UserID, profile.Skills.Len(), profile.Sectors.Len())
	return nil
}

func runProfileAddSkills(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	// The database store reports how many skills were new.
	if cfg.DatabaseURL != "" {
		store, closeStore, err := openDatabaseStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		added, err := store.AddSkills(ctx, args...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %d new skills\n", added)
		return nil
	}

	client, err := newClient(cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}
	if err := client.AddProfileSkills(ctx, args...); err != nil {
		return fmt.Errorf("failed to add skills: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent %d skills\n", len(args))
	return nil
}

func runProfileGoal(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openDatabaseStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	row, err := store.GetGoal(ctx)
	if err != nil {
		return err
	}
	if row == nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No saved goal for %s\n", cfg.UserID)
		return nil
	}

	req := &types.GoalRequirement{Goal: row.Goal}
	if len(row.Requirements) > 0 {
		if err := json.Unmarshal(row.Requirements, req); err != nil {
			return fmt.Errorf("failed to decode saved requirements: %w", err)
		}
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintGoal(req)
	return nil
}

func runProfileDelete(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openDatabaseStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.DeleteProfile(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile for %s\n", cfg.UserID)
	return nil
}

func runInitDB(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errNoDatabase
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Profile tables are ready")
	return nil
}

// openDatabaseStore opens the PostgreSQL store for the configured user.
func openDatabaseStore(ctx context.Context, cfg config.Config) (*db.ProfileStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, errNoDatabase
	}
	userID, err := db.ParseUserID(cfg.UserID)
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	return database.Profiles(userID), database.Close, nil
}
