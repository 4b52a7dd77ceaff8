package api

import "fmt"

// ServerError is a non-2xx response other than the distinguished 402. Detail
// carries the server-supplied message when the body contained one.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error (http %d)", e.Status)
	}
	return fmt.Sprintf("server error (http %d): %s", e.Status, e.Detail)
}

// Message returns a user-facing message: the server detail when present,
// otherwise a generic fallback.
func (e *ServerError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "Something went wrong. Please try again."
}
