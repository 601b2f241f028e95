package domain

import "fmt"

// ValidationError reports an entity field that is missing or out of range.
type ValidationError struct {
	Entity string
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid %s %s: %s: %s", e.Entity, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s: %s", e.Entity, e.Field, e.Reason)
}

// Kind labels validation failures for metrics.
func (e *ValidationError) Kind() string { return "validation" }

func required(entity, id, field, value string) error {
	if value == "" {
		return &ValidationError{Entity: entity, ID: id, Field: field, Reason: "required"}
	}
	return nil
}

func invalid(entity, id, field, format string, args ...any) error {
	return &ValidationError{Entity: entity, ID: id, Field: field, Reason: fmt.Sprintf(format, args...)}
}
