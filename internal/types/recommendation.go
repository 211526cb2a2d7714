package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/internship-wizard/internal/selection"
)

// RecordID identifies a recommendation. The service emits numeric ids; string
// ids are accepted as well.
type RecordID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// RecommendationRecord is one internship returned by the matching service.
type RecommendationRecord struct {
	ID                  RecordID `json:"id" validate:"required"`
	Title               string   `json:"title" validate:"required"`
	Organization        string   `json:"organization"`
	Sector              string   `json:"sector"`
	Location            string   `json:"location,omitempty"`
	Duration            string   `json:"duration,omitempty"`
	Stipend             string   `json:"stipend,omitempty"`
	Description         string   `json:"description,omitempty"`
	RemoteWork          bool     `json:"remote_work,omitempty"`
	RequiredSkills      []string `json:"skills_required"`
	MatchScore          float64  `json:"match_score" validate:"gte=0,lte=1"`
	MatchReasons        []string `json:"match_reasons,omitempty"`
	ApplicationDeadline string   `json:"application_deadline,omitempty"`
}

// Normalize brings MatchScore onto the [0,1] scale. The service reports
// percentages, so values above 1 are divided by 100.
func (r *RecommendationRecord) Normalize() {
	if r.MatchScore > 1 {
		r.MatchScore /= 100
	}
	r.RequiredSkills = r.RequiredSkillSet().Values()
}

// RequiredSkillSet returns the required skills with duplicates removed.
func (r *RecommendationRecord) RequiredSkillSet() *selection.Set[string] {
	return selection.New(r.RequiredSkills...)
}

// Validate validates the record using the validator.
func (r *RecommendationRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RecommendationResponse is the envelope returned for a recommendation request.
type RecommendationResponse struct {
	Recommendations []RecommendationRecord `json:"recommendations"`
	TotalFound      int                    `json:"total_found"`
	Error           string                 `json:"error,omitempty"`
}
