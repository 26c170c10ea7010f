package awdb

import "fmt"

// NetworkError indicates that a request to the AWDB service could not
// complete: timeout, DNS failure, connection reset or a non-200 status.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("awdb: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataFormatError indicates that the response body was not valid JSON or
// lacked fields the client expects.
type DataFormatError struct {
	URL string
	Err error
}

func (e *DataFormatError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("awdb: unexpected data: %v", e.Err)
	}

	return fmt.Sprintf("awdb: unexpected response from %s: %v", e.URL, e.Err)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// UserInputError indicates invalid query parameters supplied by the caller.
type UserInputError struct {
	Param  string
	Reason string
}

func (e *UserInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
