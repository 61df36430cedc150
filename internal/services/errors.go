package services

import "fmt"

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// ProviderError is returned when the generative-language API cannot be
// reached, answers with a non-2xx status, or returns a body without a usable
// first candidate.
type ProviderError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := "gemini: " + e.Reason
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }
