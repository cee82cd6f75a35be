// Package errs holds the error kinds shared by the solver layers.
package errs

import (
	stderrors "errors"

	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrInvalidInputShape is returned when the input is not a collection of
	// sets, a set's elements are not a sequence, or a set id repeats.
	ErrInvalidInputShape = errors.NewKind("invalid input shape: %s")

	// ErrUnsupportedKeyType is returned when a set id is neither a string nor an integer.
	ErrUnsupportedKeyType = errors.NewKind("unsupported set id type %s")

	// ErrUnsupportedElementType is returned when an element is neither a string nor an integer.
	ErrUnsupportedElementType = errors.NewKind("unsupported element type %s in set %v")

	// ErrEmptyInput is returned when there are no sets, or no set has any element.
	ErrEmptyInput = errors.NewKind("empty input: %s")

	// ErrUnknownStrategy is returned for strategy names other than greedy-0 and greedy-1.
	ErrUnknownStrategy = errors.NewKind(`unknown strategy %q: must be in ("greedy-0", "greedy-1")`)

	// ErrInternalConsistency means the selector stalled with elements left
	// uncovered. Valid input can never trigger it.
	ErrInternalConsistency = errors.NewKind("internal consistency failure: %s")

	// ErrInvalidCover is returned by cover verification.
	ErrInvalidCover = errors.NewKind("invalid cover: %s")
)

var inputKinds = []*errors.Kind{
	ErrInvalidInputShape,
	ErrUnsupportedKeyType,
	ErrUnsupportedElementType,
	ErrEmptyInput,
	ErrUnknownStrategy,
}

// Is reports whether any error in err's chain is of the given kind. Kind.Is
// only looks at err itself, which misses kinds wrapped with fmt.Errorf.
func Is(err error, kind *errors.Kind) bool {
	for ; err != nil; err = stderrors.Unwrap(err) {
		if kind.Is(err) {
			return true
		}
	}
	return false
}

// IsInputError reports whether err was caused by the caller's input, as
// opposed to a failure inside the solver.
func IsInputError(err error) bool {
	for _, k := range inputKinds {
		if Is(err, k) {
			return true
		}
	}
	return false
}
