package awesomemap

import (
	"errors"
	"fmt"
)

// Contract violations. These indicate an integration bug and are raised by
// panicking with an error wrapping one of the values below, so callers that
// recover can still match them with errors.Is.
var (
	// ErrAlreadyRegistered is raised when an interceptor that is already bound
	// to a map is added again.
	ErrAlreadyRegistered = errors.New("awesomemap: interceptor already registered")

	// ErrRawGesture is returned when a raw platform sample is used where a
	// normalized Gesture is expected. Feed raw samples through a GestureTracker.
	ErrRawGesture = errors.New("awesomemap: raw gesture must be adapted before use")

	// ErrUnsupportedGesture is returned by GestureFrom for values that are
	// neither a Gesture nor a raw sample.
	ErrUnsupportedGesture = errors.New("awesomemap: unsupported gesture template")

	// ErrNaNState is raised when a TransformState with a NaN component is
	// applied to a render target.
	ErrNaNState = errors.New("awesomemap: transform state contains NaN")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("awesomemap: invalid config")
)

// contractPanic panics with err wrapped in a descriptive message.
func contractPanic(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
