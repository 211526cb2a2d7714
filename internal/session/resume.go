package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/wizard"
)

// BeginUpload validates u and starts a new upload attempt on the resume
// branch. Guard violations are returned as *validation.InputError before any
// state changes. The returned id must be passed to CompleteUpload.
func (s *Session) BeginUpload(u *ingestion.Upload) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return uuid.Nil, err
	}
	if s.ctrl.Method() != wizard.MethodResume {
		return uuid.Nil, fmt.Errorf("%w: resume upload requires the resume method", wizard.ErrUnexpectedEvent)
	}
	if !s.ctrl.CanUpload() {
		return uuid.Nil, fmt.Errorf("%w: resume upload happens on the profile step", wizard.ErrUnexpectedEvent)
	}
	attempt, err := s.upload.Begin(u)
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("resume upload started",
		slog.String("attempt", attempt.String()),
		slog.String("filename", u.Filename),
		slog.Int("size", u.Size()),
	)
	return attempt, nil
}

// CompleteUpload applies the outcome of attempt. Outcomes of superseded
// attempts return ingestion.ErrStaleUpload and change nothing. A failed
// extraction falls back to manual entry on the profile step and is returned
// as an *ingestion.ExtractionError.
func (s *Session) CompleteUpload(attempt uuid.UUID, result *types.ResumeExtractionResult, uploadErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.upload.Complete(attempt, result, uploadErr); err != nil {
		s.log.Debug("dropped stale upload result", slog.String("attempt", attempt.String()))
		return err
	}
	if s.upload.State() != ingestion.StateFailed {
		return nil
	}

	failure := s.upload.Failure()
	s.log.Warn("resume extraction failed", slog.Any("error", failure))
	if err := s.ctrl.Fire(wizard.EventExtractionFailed); err != nil {
		return errors.Join(failure, err)
	}
	return failure
}

// UploadResume runs a whole upload attempt: guard, extraction call and
// completion. It returns the preview awaiting AcceptExtraction.
func (s *Session) UploadResume(ctx context.Context, u *ingestion.Upload) (*types.ResumeExtractionResult, error) {
	if s.extractor == nil {
		return nil, &UnavailableError{Collaborator: "resume extractor"}
	}
	attempt, err := s.BeginUpload(u)
	if err != nil {
		return nil, err
	}

	result, uploadErr := s.extractor.UploadResume(ctx, u)

	if err := s.CompleteUpload(attempt, result, uploadErr); err != nil {
		return nil, err
	}
	return s.Preview(), nil
}

// Preview returns the extraction awaiting confirmation, if any.
func (s *Session) Preview() *types.ResumeExtractionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.upload.Preview(); p != nil && s.upload.State() == ingestion.StateExtractedPreview {
		c := *p
		return &c
	}
	return nil
}

// UploadState returns the resume pipeline state.
func (s *Session) UploadState() ingestion.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload.State()
}

// AcceptExtraction merges the previewed extraction into the form and skips
// ahead to the skills step.
func (s *Session) AcceptExtraction() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if s.upload.State() != ingestion.StateExtractedPreview {
		return fmt.Errorf("%w: nothing to accept while %s", ingestion.ErrInvalidTransition, s.upload.State())
	}
	if err := s.ctrl.Fire(wizard.EventExtractionAccepted); err != nil {
		return err
	}
	accepted, err := s.upload.Accept()
	if err != nil {
		return err
	}
	ingestion.Merge(s.form, accepted)
	s.recomputeGap()
	s.log.Info("resume extraction accepted", slog.Int("skills", len(accepted.Skills)))
	return nil
}

// RejectExtraction discards the preview and returns to manual entry on the
// profile step.
func (s *Session) RejectExtraction() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if s.upload.State() != ingestion.StateExtractedPreview {
		return fmt.Errorf("%w: nothing to reject while %s", ingestion.ErrInvalidTransition, s.upload.State())
	}
	if err := s.ctrl.Fire(wizard.EventExtractionRejected); err != nil {
		return err
	}
	return s.upload.Reject()
}
