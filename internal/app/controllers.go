package app

import "errors"

var (
	// ErrConfirmationRequired guards destructive operations: without an
	// explicit confirmation no network call is made.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrSubmitInFlight rejects a duplicate submission while one is pending.
	// There is no server-side idempotency key, so this client-side guard is
	// the only thing preventing double writes.
	ErrSubmitInFlight = errors.New("submission already in flight")
)

// Placement decides where a freshly created record lands in a local list.
// The backend does not prescribe an order, so it is a per-page policy.
type Placement int

const (
	Prepend Placement = iota
	Append
)

func insert[T any](list []T, item T, p Placement) []T {
	if p == Prepend {
		return append([]T{item}, list...)
	}
	return append(list, item)
}
