package schemas

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/internship-wizard/internal/types"
	rootschemas "github.com/jonathan/internship-wizard/schemas"
)

// LoadProfile reads and validates a profile document and returns its snapshot.
func LoadProfile(path string) (*types.FormSnapshot, error) {
	var payload types.ProfilePayload
	if err := loadDocument(path, rootschemas.Profile, &payload); err != nil {
		return nil, err
	}
	return payload.Snapshot(), nil
}

// LoadRecommendations reads and validates a recommendation response. Records
// are normalized and checked the same way the service client checks them.
func LoadRecommendations(path string) ([]types.RecommendationRecord, error) {
	var resp types.RecommendationResponse
	if err := loadDocument(path, rootschemas.Recommendations, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%s: response reports error: %s", path, resp.Error)
	}
	records := resp.Recommendations
	for i := range records {
		records[i].Normalize()
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: recommendation %d: %w", path, i, err)
		}
	}
	return records, nil
}

// LoadGoalRequirement reads and validates a goal requirement document.
func LoadGoalRequirement(path string) (*types.GoalRequirement, error) {
	var req types.GoalRequirement
	if err := loadDocument(path, rootschemas.GoalRequirement, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func loadDocument(path, schemaName string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := ValidateDocument(schemaName, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
