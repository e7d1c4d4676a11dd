package services

import "fmt"

// NotFoundError signals a referenced course, payment or lesson is absent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError signals a state conflict: duplicate payment confirmation or
// an already-active enrollment at purchase time.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ProviderError carries the raw diagnostic detail of a failed call to the
// payment provider.
type ProviderError struct {
	Detail string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment provider error: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("payment provider error: %s", e.Detail)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
