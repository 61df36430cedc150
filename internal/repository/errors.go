package repository

import "fmt"

// StoreError reports a failed read or write against the conversation store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("chat store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
