package db

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRow is the scalar part of a stored candidate profile.
type ProfileRow struct {
	UserID             uuid.UUID `json:"user_id"`
	EducationLevel     string    `json:"education_level"`
	ExperienceLevel    string    `json:"experience_level"`
	CareerGoal         *string   `json:"career_goal,omitempty"`
	LocationPreference *string   `json:"location_preference,omitempty"`
	RemoteWork         bool      `json:"remote_work"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// GoalRow is a saved career goal.
type GoalRow struct {
	UserID       uuid.UUID `json:"user_id"`
	Goal         string    `json:"goal"`
	Description  *string   `json:"description,omitempty"`
	Requirements []byte    `json:"requirements,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserNamespace derives stable user ids from free-form names.
var UserNamespace = uuid.MustParse("6f1c2b9e-3d4a-4c1f-9b8e-2a7d5e0f1c3b")

// ParseUserID accepts a UUID or any other non-empty name, which is mapped
// to a deterministic UUID in UserNamespace.
func ParseUserID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, errEmptyUser
	}
	if id, err := uuid.Parse(s); err == nil {
		return id, nil
	}
	return uuid.NewSHA1(UserNamespace, []byte(s)), nil
}
