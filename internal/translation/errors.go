package translation

import "errors"

// Error taxonomy for the translation pipeline. Callers classify failures with
// errors.Is and map them to transport-level responses; wrapped messages carry
// the detail.
var (
	// ErrValidation marks bad or missing caller input. Client fault.
	ErrValidation = errors.New("validation error")

	// ErrProviderUnavailable marks a provider that is not configured at all.
	ErrProviderUnavailable = errors.New("translation provider is not configured")

	// ErrProvider marks a failed or timed-out provider call. One attempt is
	// made per request; the caller may resubmit.
	ErrProvider = errors.New("translation provider call failed")

	// ErrMalformedResponse marks a provider response that could not be parsed
	// into the expected structured shape. Never cached.
	ErrMalformedResponse = errors.New("translation provider response is malformed")
)
