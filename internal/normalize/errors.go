package normalize

import "errors"

var (
	// ErrMalformedPayload marks a payload that could not be turned into a record.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrBurnAccount marks a reward credited to a burn account. It is a filter, not a failure.
	ErrBurnAccount = errors.New("burn account")
)
