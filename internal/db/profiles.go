package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/internship-wizard/internal/types"
)

var errEmptyUser = errors.New("user id is required")

// ProfileStore scopes profile operations to one user.
type ProfileStore struct {
	db     *DB
	userID uuid.UUID
}

// Profiles returns the store for userID.
func (db *DB) Profiles(userID uuid.UUID) *ProfileStore {
	return &ProfileStore{db: db, userID: userID}
}

// UserID returns the user this store is scoped to.
func (s *ProfileStore) UserID() uuid.UUID { return s.userID }

// GetProfileRow retrieves the scalar profile columns, or nil when absent.
func (s *ProfileStore) GetProfileRow(ctx context.Context) (*ProfileRow, error) {
	var p ProfileRow
	err := s.db.pool.QueryRow(ctx,
		`SELECT user_id, education_level, experience_level, career_goal,
		        location_preference, remote_work, created_at, updated_at
		 FROM candidate_profiles WHERE user_id = $1`,
		s.userID,
	).Scan(&p.UserID, &p.EducationLevel, &p.ExperienceLevel, &p.CareerGoal,
		&p.LocationPreference, &p.RemoteWork, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// LoadProfile returns the stored snapshot, or nil when the user has none.
func (s *ProfileStore) LoadProfile(ctx context.Context) (*types.FormSnapshot, error) {
	row, err := s.GetProfileRow(ctx)
	if err != nil || row == nil {
		return nil, err
	}

	form := types.NewFormSnapshot()
	form.EducationLevel = row.EducationLevel
	form.ExperienceLevel = row.ExperienceLevel
	form.CareerGoal = derefString(row.CareerGoal)
	form.LocationPreference = derefString(row.LocationPreference)
	form.RemoteWork = row.RemoteWork

	skills, err := s.listOrdered(ctx, `SELECT skill FROM profile_skills WHERE user_id = $1 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile skills: %w", err)
	}
	form.Skills.AddAll(skills...)

	sectors, err := s.listOrdered(ctx, `SELECT sector FROM profile_sectors WHERE user_id = $1 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile sectors: %w", err)
	}
	for _, sector := range sectors {
		form.Sectors.Add(types.SectorID(sector))
	}
	return form, nil
}

func (s *ProfileStore) listOrdered(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.pool.Query(ctx, query, s.userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// SaveProfile replaces the stored profile with f.
func (s *ProfileStore) SaveProfile(ctx context.Context, f *types.FormSnapshot) error {
	if f == nil {
		return fmt.Errorf("failed to save profile: snapshot is nil")
	}
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertProfile(ctx, tx, s.userID, f); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profile_skills WHERE user_id = $1`, s.userID); err != nil {
		return fmt.Errorf("failed to clear profile skills: %w", err)
	}
	for i, skill := range normalizeSkills(f.Skills.Values()) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO profile_skills (user_id, skill, position) VALUES ($1, $2, $3)`,
			s.userID, skill, i,
		); err != nil {
			return fmt.Errorf("failed to insert skill %q: %w", skill, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profile_sectors WHERE user_id = $1`, s.userID); err != nil {
		return fmt.Errorf("failed to clear profile sectors: %w", err)
	}
	for i, sector := range f.Sectors.Values() {
		if _, err := tx.Exec(ctx,
			`INSERT INTO profile_sectors (user_id, sector, position) VALUES ($1, $2, $3)`,
			s.userID, string(sector), i,
		); err != nil {
			return fmt.Errorf("failed to insert sector %q: %w", sector, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func upsertProfile(ctx context.Context, tx pgx.Tx, userID uuid.UUID, f *types.FormSnapshot) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO candidate_profiles
		     (user_id, education_level, experience_level, career_goal, location_preference, remote_work)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		     education_level = $2,
		     experience_level = $3,
		     career_goal = $4,
		     location_preference = $5,
		     remote_work = $6,
		     updated_at = NOW()`,
		userID, f.EducationLevel, f.ExperienceLevel,
		nullIfEmpty(f.CareerGoal), nullIfEmpty(f.LocationPreference), f.RemoteWork,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// AddProfileSkills appends skills the profile does not already hold.
func (s *ProfileStore) AddProfileSkills(ctx context.Context, skills ...string) error {
	_, err := s.AddSkills(ctx, skills...)
	return err
}

// AddSkills is AddProfileSkills returning the number of skills actually
// added. A profile row is created on first use.
func (s *ProfileStore) AddSkills(ctx context.Context, skills ...string) (int, error) {
	skills = normalizeSkills(skills)
	if len(skills) == 0 {
		return 0, nil
	}
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO candidate_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		s.userID,
	); err != nil {
		return 0, fmt.Errorf("failed to ensure profile: %w", err)
	}

	var next int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM profile_skills WHERE user_id = $1`,
		s.userID,
	).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to read skill position: %w", err)
	}

	added := 0
	for _, skill := range skills {
		tag, err := tx.Exec(ctx,
			`INSERT INTO profile_skills (user_id, skill, position) VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			s.userID, skill, next+added,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to add skill %q: %w", skill, err)
		}
		added += int(tag.RowsAffected())
	}

	if _, err := tx.Exec(ctx,
		`UPDATE candidate_profiles SET updated_at = NOW() WHERE user_id = $1`, s.userID,
	); err != nil {
		return 0, fmt.Errorf("failed to touch profile: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit skills: %w", err)
	}
	return added, nil
}

// SaveGoal stores the user's career goal with its requirements.
func (s *ProfileStore) SaveGoal(ctx context.Context, goal, description string, req *types.GoalRequirement) error {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return fmt.Errorf("failed to save goal: goal is required")
	}
	var requirements []byte
	if req != nil {
		b, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to marshal goal requirements: %w", err)
		}
		requirements = b
	}
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO career_goals (user_id, goal, description, requirements)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		     goal = $2, description = $3, requirements = $4, created_at = NOW()`,
		s.userID, goal, nullIfEmpty(description), requirements,
	)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// GetGoal retrieves the saved goal, or nil when absent.
func (s *ProfileStore) GetGoal(ctx context.Context) (*GoalRow, error) {
	var g GoalRow
	err := s.db.pool.QueryRow(ctx,
		`SELECT user_id, goal, description, requirements, created_at
		 FROM career_goals WHERE user_id = $1`,
		s.userID,
	).Scan(&g.UserID, &g.Goal, &g.Description, &g.Requirements, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

// DeleteProfile removes the profile, its selections and its goal.
func (s *ProfileStore) DeleteProfile(ctx context.Context) error {
	if _, err := s.db.pool.Exec(ctx, `DELETE FROM career_goals WHERE user_id = $1`, s.userID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if _, err := s.db.pool.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, s.userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// normalizeSkills trims, drops blanks and removes duplicates, keeping the
// first occurrence.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
