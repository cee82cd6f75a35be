package setcover

import (
	"github.com/hayeah/setcover/internal/errs"
)

// Error kinds returned by this package. Test with Kind.Is, or with Is when
// the error may have been wrapped.
var (
	ErrInvalidInputShape      = errs.ErrInvalidInputShape
	ErrUnsupportedKeyType     = errs.ErrUnsupportedKeyType
	ErrUnsupportedElementType = errs.ErrUnsupportedElementType
	ErrEmptyInput             = errs.ErrEmptyInput
	ErrUnknownStrategy        = errs.ErrUnknownStrategy
	ErrInternalConsistency    = errs.ErrInternalConsistency
	ErrInvalidCover           = errs.ErrInvalidCover
)

// Is reports whether err, or any error it wraps, is of kind.
var Is = errs.Is

// IsInputError reports whether err is the caller's fault (bad input or an
// unknown strategy) rather than a failure inside the solver.
func IsInputError(err error) bool {
	return errs.IsInputError(err)
}
