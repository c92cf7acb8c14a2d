package api

import (
	"errors"
	"fmt"
)

var ErrNoOrderID = errors.New("order create response carried no order id")

// RemoteError is a non-success HTTP response from an otherwise reachable
// API. Message holds the optional error field, read opportunistically.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote rejected request: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote rejected request: status %d", e.StatusCode)
}

// IsRemoteRejection distinguishes a rejection by a reachable API from a
// transport failure.
func IsRemoteRejection(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
