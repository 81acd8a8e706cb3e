package api

import "fmt"

// TransportError reports a non-2xx response or a failed request. Body is
// only populated where the server includes useful detail (chat turns).
type TransportError struct {
	Op         string
	StatusText string
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s failed: %s - %s", e.Op, e.StatusText, e.Body)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.StatusText)
}

// ValidationError reports a client-side precondition failure: wrong file
// type, empty chat input, or no active document. Nothing is sent to the
// server when one of these is raised.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
