// Package schemas holds the JSON Schemas for documents the CLI reads from disk.
package schemas

import "embed"

// Schema file names.
const (
	Profile         = "profile.schema.json"
	Recommendations = "recommendations.schema.json"
	GoalRequirement = "goal_requirement.schema.json"
)

//go:embed *.schema.json
var FS embed.FS
