package sanity

import "fmt"

// QueryError reports a failed read: unreachable store, malformed query, or a
// non-success status from the query endpoint.
type QueryError struct {
	Status  int
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sanity query: %v", e.Err)
	}
	return fmt.Sprintf("sanity query: %s (status %d)", e.Message, e.Status)
}

func (e *QueryError) Unwrap() error { return e.Err }

// WriteError reports a rejected mutation: schema violation, missing or invalid
// token, or an unreachable store.
type WriteError struct {
	Status  int
	Message string
	Err     error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sanity mutate: %v", e.Err)
	}
	return fmt.Sprintf("sanity mutate: %s (status %d)", e.Message, e.Status)
}

func (e *WriteError) Unwrap() error { return e.Err }
