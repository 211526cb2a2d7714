package wizard

import "github.com/jonathan/internship-wizard/internal/validation"

// View is the read-only navigation state a renderer needs.
type View struct {
	Step           validation.Step   `json:"step"`
	History        []validation.Step `json:"history"`
	Method         InputMethod       `json:"method,omitempty"`
	ShowBack       bool              `json:"show_back"`
	ShowForward    bool              `json:"show_forward"`
	ShowSubmit     bool              `json:"show_submit"`
	ForwardEnabled bool              `json:"forward_enabled"`
	SubmitEnabled  bool              `json:"submit_enabled"`
	Submitted      bool              `json:"submitted"`
}

// View recomputes the navigation state from the controller and its form.
func (c *Controller) View() View {
	last := c.current == validation.TotalSteps
	return View{
		Step:           c.current,
		History:        c.History(),
		Method:         c.method,
		ShowBack:       c.current > validation.StepMethod,
		ShowForward:    !last,
		ShowSubmit:     last,
		ForwardEnabled: c.CanAdvance(),
		SubmitEnabled:  c.CanSubmit(),
		Submitted:      c.submitted,
	}
}
