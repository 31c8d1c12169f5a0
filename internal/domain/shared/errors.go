package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError represents a recoverable rejection of a requested action.
// The offending action is refused and no state is mutated for it; callers
// surface Field and Message to the decision provider unmodified.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ReferentialError represents a reference to an entity that does not exist
// (a dangling industry, resource or action id). Fatal for the action that
// carried it, but never for the turn.
type ReferentialError struct {
	EntityKind string
	Key        string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.EntityKind, e.Key)
}

func NewReferentialError(entityKind, key string) *ReferentialError {
	return &ReferentialError{EntityKind: entityKind, Key: key}
}

// InvariantViolation signals that a computed value escaped its documented
// bound after all clamping. It can only be produced by a programming defect,
// never by valid inputs, so it is raised as a panic rather than returned.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Invariant, e.Detail)
}

// AssertInvariant panics with an InvariantViolation when cond is false.
func AssertInvariant(cond bool, invariant, format string, args ...interface{}) {
	if !cond {
		panic(&InvariantViolation{
			Invariant: invariant,
			Detail:    fmt.Sprintf(format, args...),
		})
	}
}
