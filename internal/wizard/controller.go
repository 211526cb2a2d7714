package wizard

import (
	"fmt"

	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
)

// InputMethod is the branch chosen on the first step.
type InputMethod string

const (
	MethodNone   InputMethod = ""
	MethodManual InputMethod = "manual"
	MethodResume InputMethod = "resume"
)

// ParseInputMethod maps user text onto an InputMethod.
func ParseInputMethod(s string) (InputMethod, error) {
	switch InputMethod(s) {
	case MethodManual, MethodResume:
		return InputMethod(s), nil
	default:
		return MethodNone, &validation.InputError{Field: "input_method", Message: fmt.Sprintf("unknown input method %q", s)}
	}
}

// Event is an input to the controller's transition table.
type Event int

const (
	EventAdvance Event = iota
	EventRetreat
	EventChooseManual
	EventChooseResume
	EventExtractionAccepted // resume preview confirmed, profile step skipped
	EventExtractionRejected // user chose to edit manually
	EventExtractionFailed   // upload or extraction failed
	EventSubmit
)

var eventNames = map[Event]string{
	EventAdvance:            "advance",
	EventRetreat:            "retreat",
	EventChooseManual:       "choose_manual",
	EventChooseResume:       "choose_resume",
	EventExtractionAccepted: "extraction_accepted",
	EventExtractionRejected: "extraction_rejected",
	EventExtractionFailed:   "extraction_failed",
	EventSubmit:             "submit",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Events lists every event, for exhaustive transition tests.
func Events() []Event {
	return []Event{
		EventAdvance, EventRetreat, EventChooseManual, EventChooseResume,
		EventExtractionAccepted, EventExtractionRejected, EventExtractionFailed, EventSubmit,
	}
}

type jumpMode int

const (
	// jumpReset replaces history with [StepMethod, target].
	jumpReset jumpMode = iota
	// jumpPush appends target to history.
	jumpPush
)

// transitions is the controller's transition table.
var transitions = map[Event]func(c *Controller) error{
	EventAdvance: func(c *Controller) error {
		if c.current >= validation.TotalSteps {
			return ErrAtLastStep
		}
		if err := validation.Check(c.current, c.form); err != nil {
			return fmt.Errorf("%w: %w", ErrStepInvalid, err)
		}
		c.push(c.current + 1)
		return nil
	},
	EventRetreat: func(c *Controller) error {
		if len(c.history) <= 1 {
			return ErrNoHistory
		}
		c.history = c.history[:len(c.history)-1]
		c.current = c.history[len(c.history)-1]
		return nil
	},
	EventChooseManual: func(c *Controller) error {
		if c.current != validation.StepMethod {
			return fmt.Errorf("%w: input method is chosen on step %d", ErrUnexpectedEvent, validation.StepMethod)
		}
		c.method = MethodManual
		return c.jumpTo(validation.StepProfile, jumpReset)
	},
	EventChooseResume: func(c *Controller) error {
		if c.current != validation.StepMethod {
			return fmt.Errorf("%w: input method is chosen on step %d", ErrUnexpectedEvent, validation.StepMethod)
		}
		c.method = MethodResume
		return c.jumpTo(validation.StepProfile, jumpReset)
	},
	EventExtractionAccepted: func(c *Controller) error {
		if err := c.requireUploadStep(); err != nil {
			return err
		}
		return c.jumpTo(validation.StepSkills, jumpPush)
	},
	EventExtractionRejected: func(c *Controller) error {
		if err := c.requireUploadStep(); err != nil {
			return err
		}
		return c.jumpTo(validation.StepProfile, jumpReset)
	},
	EventExtractionFailed: func(c *Controller) error {
		if err := c.requireResumeBranch(); err != nil {
			return err
		}
		return c.jumpTo(validation.StepProfile, jumpReset)
	},
	EventSubmit: func(c *Controller) error {
		if c.current != validation.TotalSteps {
			return ErrNotAtLastStep
		}
		if err := validation.Check(validation.TotalSteps, c.form); err != nil {
			return fmt.Errorf("%w: %w", ErrStepInvalid, err)
		}
		c.submitted = true
		return nil
	},
}

// Controller owns the current step, the navigation history and the chosen
// input method. History is never empty and always ends with the current step.
// A Controller is not safe for concurrent use; session.Session serializes access.
type Controller struct {
	form      *types.FormSnapshot
	current   validation.Step
	history   []validation.Step
	method    InputMethod
	submitted bool
}

// New returns a controller on the first step. form is read by the gate on
// every transition, so later mutations to it are observed.
func New(form *types.FormSnapshot) *Controller {
	if form == nil {
		form = types.NewFormSnapshot()
	}
	return &Controller{
		form:    form,
		current: validation.StepMethod,
		history: []validation.Step{validation.StepMethod},
	}
}

// Fire applies ev. A rejected event leaves step, history and method unchanged.
func (c *Controller) Fire(ev Event) error {
	if c.submitted {
		return ErrSubmitted
	}
	apply, ok := transitions[ev]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnexpectedEvent, ev)
	}

	saved := c.save()
	if err := apply(c); err != nil {
		c.restore(saved)
		return err
	}
	return nil
}

// Advance moves to the next step when the current one passes its gate.
func (c *Controller) Advance() error { return c.Fire(EventAdvance) }

// Retreat returns to the previously visited step, which may differ from
// current-1 after a branch jump.
func (c *Controller) Retreat() error { return c.Fire(EventRetreat) }

// ChooseMethod enters the manual or resume branch from the first step.
func (c *Controller) ChooseMethod(m InputMethod) error {
	switch m {
	case MethodManual:
		return c.Fire(EventChooseManual)
	case MethodResume:
		return c.Fire(EventChooseResume)
	default:
		return &validation.InputError{Field: "input_method", Message: fmt.Sprintf("unknown input method %q", m)}
	}
}

// Submit marks the wizard as submitted. The caller then hands the snapshot to
// the recommendation service; on failure it calls ReopenSubmission.
func (c *Controller) Submit() error { return c.Fire(EventSubmit) }

// ReopenSubmission leaves the terminal state after a failed submission so the
// user can retry from the last step.
func (c *Controller) ReopenSubmission() {
	c.submitted = false
}

// Current returns the active step.
func (c *Controller) Current() validation.Step { return c.current }

// History returns a copy of the visited steps, oldest first.
func (c *Controller) History() []validation.Step {
	out := make([]validation.Step, len(c.history))
	copy(out, c.history)
	return out
}

// Method returns the chosen input method.
func (c *Controller) Method() InputMethod { return c.method }

// Submitted reports whether the terminal submit action has been taken.
func (c *Controller) Submitted() bool { return c.submitted }

// CanAdvance reports whether Advance would succeed right now.
func (c *Controller) CanAdvance() bool {
	return !c.submitted && c.current < validation.TotalSteps && validation.Gate(c.current, c.form)
}

// CanSubmit reports whether Submit would succeed right now.
func (c *Controller) CanSubmit() bool {
	return !c.submitted && c.current == validation.TotalSteps && validation.Gate(validation.TotalSteps, c.form)
}

func (c *Controller) requireResumeBranch() error {
	if c.method != MethodResume {
		return fmt.Errorf("%w: not on the resume branch", ErrUnexpectedEvent)
	}
	return nil
}

// requireUploadStep allows resume preview decisions only on the profile step
// of the resume branch.
func (c *Controller) requireUploadStep() error {
	if err := c.requireResumeBranch(); err != nil {
		return err
	}
	if c.current != validation.StepProfile {
		return fmt.Errorf("%w: resume upload happens on step %d", ErrUnexpectedEvent, validation.StepProfile)
	}
	return nil
}

// CanUpload reports whether a resume upload may start now.
func (c *Controller) CanUpload() bool {
	return !c.submitted && c.requireUploadStep() == nil
}

func (c *Controller) jumpTo(step validation.Step, mode jumpMode) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", ErrOutOfRange, step)
	}
	switch mode {
	case jumpReset:
		c.history = []validation.Step{validation.StepMethod, step}
		c.current = step
	case jumpPush:
		c.push(step)
	}
	return nil
}

func (c *Controller) push(step validation.Step) {
	c.history = append(c.history, step)
	c.current = step
}

type savedState struct {
	current validation.Step
	history []validation.Step
	method  InputMethod
}

func (c *Controller) save() savedState {
	return savedState{current: c.current, history: c.History(), method: c.method}
}

func (c *Controller) restore(s savedState) {
	c.current = s.current
	c.history = s.history
	c.method = s.method
}
