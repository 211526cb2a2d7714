package ingestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/internship-wizard/internal/types"
)

// State is a position in the resume ingestion lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StateUploading        State = "uploading"
	StateExtractedPreview State = "extracted_preview"
	StateFailed           State = "failed"
	StateAccepted         State = "accepted"
	StateEditing          State = "editing"
)

// canUpload lists the states from which a new upload may start. Failed and
// Editing behave as Idle (upload area reset); a new upload from Uploading
// supersedes the in-flight attempt, and one from ExtractedPreview discards
// the unconfirmed result.
var canUpload = map[State]bool{
	StateIdle:             true,
	StateFailed:           true,
	StateEditing:          true,
	StateUploading:        true,
	StateExtractedPreview: true,
}

// Pipeline tracks one resume upload at a time. At most one extraction result
// is live: starting a new attempt discards any earlier preview or failure.
// A Pipeline is not safe for concurrent use; session.Session serializes access.
type Pipeline struct {
	state    State
	attempt  uuid.UUID
	metadata *Metadata
	preview  *types.ResumeExtractionResult
	failure  error
}

// NewPipeline returns an idle pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{state: StateIdle}
}

// State returns the current state.
func (p *Pipeline) State() State { return p.state }

// Attempt returns the id of the live upload attempt, or uuid.Nil.
func (p *Pipeline) Attempt() uuid.UUID { return p.attempt }

// Metadata describes the live attempt's file, if any.
func (p *Pipeline) Metadata() *Metadata { return p.metadata }

// Preview returns the extraction result awaiting confirmation, if any.
func (p *Pipeline) Preview() *types.ResumeExtractionResult { return p.preview }

// Failure returns the error that moved the pipeline to StateFailed.
func (p *Pipeline) Failure() error { return p.failure }

// Begin validates u and enters StateUploading under a fresh attempt id.
// Guard violations return a *validation.InputError and leave the pipeline
// untouched, so no network call must be made.
func (p *Pipeline) Begin(u *Upload) (uuid.UUID, error) {
	if !canUpload[p.state] {
		return uuid.Nil, fmt.Errorf("%w: cannot upload while %s", ErrInvalidTransition, p.state)
	}
	if err := CheckUpload(u); err != nil {
		return uuid.Nil, err
	}

	p.clear()
	p.state = StateUploading
	p.attempt = uuid.New()
	p.metadata = NewMetadata(u)
	return p.attempt, nil
}

// Complete records the outcome of attempt. Results for a superseded attempt
// are dropped with ErrStaleUpload. A transport error or a result carrying an
// error message moves the pipeline to StateFailed; otherwise the result is
// held in StateExtractedPreview without being merged anywhere.
func (p *Pipeline) Complete(attempt uuid.UUID, result *types.ResumeExtractionResult, err error) error {
	if p.state != StateUploading || attempt != p.attempt {
		return ErrStaleUpload
	}

	switch {
	case err != nil:
		p.fail(&ExtractionError{Message: "upload failed", Cause: err})
	case result == nil:
		p.fail(&ExtractionError{Message: "empty response"})
	case result.Error != "":
		p.fail(&ExtractionError{Message: result.Error})
	default:
		preview := *result
		preview.Skills = cleanSkills(result.Skills)
		p.preview = &preview
		p.state = StateExtractedPreview
	}
	return nil
}

// Accept confirms the preview and returns it for merging.
func (p *Pipeline) Accept() (*types.ResumeExtractionResult, error) {
	if p.state != StateExtractedPreview {
		return nil, fmt.Errorf("%w: nothing to accept while %s", ErrInvalidTransition, p.state)
	}
	accepted := p.preview
	p.state = StateAccepted
	return accepted, nil
}

// Reject discards the preview and enters StateEditing.
func (p *Pipeline) Reject() error {
	if p.state != StateExtractedPreview {
		return fmt.Errorf("%w: nothing to reject while %s", ErrInvalidTransition, p.state)
	}
	p.clear()
	p.state = StateEditing
	return nil
}

// Reset returns to StateIdle, discarding everything.
func (p *Pipeline) Reset() {
	p.clear()
	p.state = StateIdle
}

func (p *Pipeline) fail(err error) {
	p.preview = nil
	p.failure = err
	p.state = StateFailed
}

func (p *Pipeline) clear() {
	p.attempt = uuid.Nil
	p.metadata = nil
	p.preview = nil
	p.failure = nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Merge copies an accepted extraction into form. Skills are added through the
// selection set, so existing entries keep their position and duplicates are
// ignored. Education and experience are only overwritten when the extraction
// supplied them.
func Merge(form *types.FormSnapshot, result *types.ResumeExtractionResult) {
	if form == nil || result == nil {
		return
	}
	form.Skills.AddAll(cleanSkills(result.Skills)...)
	if v := strings.TrimSpace(result.EducationLevel); v != "" {
		form.EducationLevel = v
	}
	if v := strings.TrimSpace(result.ExperienceLevel); v != "" {
		form.ExperienceLevel = v
	}
}
