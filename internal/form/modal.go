package form

import (
	"errors"
	"fmt"
)

// State is the lifecycle position of a modal.
type State int

// Modal states.
const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when a modal is driven out of order.
var ErrInvalidTransition = errors.New("form: invalid modal transition")

// Modal tracks one dialog and the fields bound to it.
type Modal[F any] struct {
	state     State
	populated bool
	resetOK   bool
	Fields    F
	// Error holds the banner text of the last failed submission.
	Error string
}

// NewModal returns a closed modal. When resetOnSuccess is set the fields are
// cleared after a successful submission.
func NewModal[F any](resetOnSuccess bool) *Modal[F] {
	return &Modal[F]{resetOK: resetOnSuccess}
}

// State returns the current lifecycle state.
func (m *Modal[F]) State() State {
	return m.state
}

// IsOpen reports whether the dialog is visible.
func (m *Modal[F]) IsOpen() bool {
	return m.state == Open || m.state == Submitting
}

// Populated reports whether the dialog was opened with existing values.
func (m *Modal[F]) Populated() bool {
	return m.populated
}

// OpenBlank shows the dialog with whatever fields it currently holds.
func (m *Modal[F]) OpenBlank() error {
	if m.state != Closed {
		return fmt.Errorf("%w: open from %s", ErrInvalidTransition, m.state)
	}
	m.state = Open
	m.populated = false
	m.Error = ""
	return nil
}

// OpenWith shows the dialog populated with fields.
func (m *Modal[F]) OpenWith(fields F) error {
	if m.state != Closed {
		return fmt.Errorf("%w: open from %s", ErrInvalidTransition, m.state)
	}
	m.state = Open
	m.populated = true
	m.Fields = fields
	m.Error = ""
	return nil
}

// Begin marks the dialog as submitting.
func (m *Modal[F]) Begin() error {
	if m.state != Open {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, m.state)
	}
	m.state = Submitting
	return nil
}

// Succeed closes the dialog after a successful submission.
func (m *Modal[F]) Succeed() error {
	if m.state != Submitting {
		return fmt.Errorf("%w: succeed from %s", ErrInvalidTransition, m.state)
	}
	m.state = Closed
	m.Error = ""
	if m.resetOK {
		var zero F
		m.Fields = zero
		m.populated = false
	}
	return nil
}

// Fail keeps the dialog open with its fields and records the banner text.
func (m *Modal[F]) Fail(message string) error {
	if m.state != Submitting {
		return fmt.Errorf("%w: fail from %s", ErrInvalidTransition, m.state)
	}
	m.state = Open
	m.Error = message
	return nil
}
