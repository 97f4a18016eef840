package form

import (
	"context"
	"errors"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/shared"
)

// OutcomeKind tags the result of a submission.
type OutcomeKind int

// Submission outcomes.
const (
	Invalid OutcomeKind = iota
	Rejected
	Failed
	Succeeded
)

// Messages are the banner texts of one dialog.
type Messages struct {
	// Success is shown after the backend accepted the change.
	Success string
	// RejectedPrefix is prepended to the backend error text, e.g. "Error adding item: ".
	RejectedPrefix string
	// Failure is shown when the backend could not be reached.
	Failure string
}

// Outcome is what a submission produced.
type Outcome[T any] struct {
	Kind    OutcomeKind
	Value   T
	Message string
}

// Alert converts the outcome into the banner the user sees.
func (o Outcome[T]) Alert(msgs Messages) shared.Alert {
	switch o.Kind {
	case Invalid:
		return shared.Alert{Kind: shared.AlertWarning, Message: o.Message}
	case Rejected:
		return shared.Alert{Kind: shared.AlertDanger, Message: msgs.RejectedPrefix + o.Message}
	case Failed:
		return shared.Alert{Kind: shared.AlertDanger, Message: msgs.Failure}
	default:
		return shared.Alert{Kind: shared.AlertSuccess, Message: msgs.Success}
	}
}

// Submit validates the modal fields and, when they pass, sends them. The modal
// closes on success and stays open with its fields on any failure.
func Submit[F, T any](ctx context.Context, m *Modal[F], validate func(F) error, send func(context.Context, F) backend.Result[T]) Outcome[T] {
	if !m.IsOpen() {
		_ = m.OpenBlank()
	}
	if validate != nil {
		if err := validate(m.Fields); err != nil {
			msg := err.Error()
			var verr *ValidationError
			if errors.As(err, &verr) {
				msg = verr.Message
			}
			m.Error = msg
			return Outcome[T]{Kind: Invalid, Message: msg}
		}
	}

	if err := m.Begin(); err != nil {
		return Outcome[T]{Kind: Failed, Message: err.Error()}
	}
	res := send(ctx, m.Fields)
	switch {
	case res.OK():
		_ = m.Succeed()
		return Outcome[T]{Kind: Succeeded, Value: res.Value}
	case res.Rejected():
		_ = m.Fail(res.Message)
		return Outcome[T]{Kind: Rejected, Message: res.Message}
	default:
		_ = m.Fail(res.Message)
		return Outcome[T]{Kind: Failed, Message: res.Message}
	}
}
