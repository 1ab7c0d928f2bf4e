package api

import "fmt"

// InputError reports a request that could not be turned into a byte message.
// No hashing is attempted for such requests.
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %s", e.Reason, e.Err)
	}
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error {
	return e.Err
}
