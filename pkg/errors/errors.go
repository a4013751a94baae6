package errors

import "fmt"

// ErrCollection is returned when paging the Shopify read API fails. It is
// fatal to the whole scan; partial results are discarded.
type ErrCollection struct {
	Page int
	Err  error
}

func (e *ErrCollection) Error() string {
	return fmt.Sprintf("collection failed on page %d: %v", e.Page, e.Err)
}

func (e *ErrCollection) Unwrap() error {
	return e.Err
}

// ErrParse is returned when an uploaded reference file is malformed. It is
// reported before any network call is made.
type ErrParse struct {
	Line    int
	Message string
}

func (e *ErrParse) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation is returned when request validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}
