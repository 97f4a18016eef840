package backend

import "errors"

// Outcome tags a Result.
type Outcome string

// Result outcomes.
const (
	OutcomeOK        Outcome = "ok"
	OutcomeRejected  Outcome = "rejected"
	OutcomeTransport Outcome = "transport"
)

// TransportMessage is shown when the backend cannot be reached or understood.
const TransportMessage = "Unable to reach the inventory service"

var (
	// ErrSeriesMismatch flags a report whose labels and values differ in length.
	ErrSeriesMismatch = errors.New("report series labels and values differ in length")
	// ErrEmptyResponse flags a 2xx reply without a body.
	ErrEmptyResponse = errors.New("empty response body")
)

// Result is the tagged outcome of one backend call.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	// Status is the HTTP status for OK and Rejected results.
	Status int
	// Message is the backend error text for Rejected and a generic text for Transport.
	Message string
	// Err keeps the underlying cause of a Transport failure for logging.
	Err error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Outcome == OutcomeOK
}

// Rejected reports whether the backend answered with an error status.
func (r Result[T]) Rejected() bool {
	return r.Outcome == OutcomeRejected
}

// Failed reports whether the call never produced a usable answer.
func (r Result[T]) Failed() bool {
	return r.Outcome == OutcomeTransport
}

func okResult[T any](value T, status int) Result[T] {
	return Result[T]{Outcome: OutcomeOK, Value: value, Status: status}
}

func rejectedResult[T any](status int, message string) Result[T] {
	return Result[T]{Outcome: OutcomeRejected, Status: status, Message: message}
}

func transportFailure[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeTransport, Message: TransportMessage, Err: err}
}

// Map converts an OK value while keeping failure tags intact.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.OK() {
		return Result[U]{Outcome: r.Outcome, Status: r.Status, Message: r.Message, Err: r.Err}
	}
	return Result[U]{Outcome: r.Outcome, Value: fn(r.Value), Status: r.Status}
}
