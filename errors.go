package elevationprofile

import "errors"

var (
	ErrInputMissing              = errors.New("input missing")
	ErrMultiFeatureUnsupported   = errors.New("multi feature unsupported")
	ErrNoDataInBounds            = errors.New("no data in bounds")
	ErrMalformedChunk            = errors.New("malformed chunk")
	ErrTooManyPoints             = errors.New("too many points")
	ErrIncompleteBackendResponse = errors.New("incomplete backend response")
	ErrNetwork                   = errors.New("network error")
)

// A ProfileError is returned when a profile cannot be computed. Cause is one
// of the sentinel errors in this package, possibly wrapped.
type ProfileError struct {
	Cause error
}

func newProfileError(cause error) *ProfileError {
	return &ProfileError{
		Cause: cause,
	}
}

func (e *ProfileError) Error() string {
	return "elevation profile: " + e.Cause.Error()
}

func (e *ProfileError) Unwrap() error {
	return e.Cause
}
