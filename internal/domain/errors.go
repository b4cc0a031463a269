package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the entity model and its read paths
var (
	// ErrDuplicateKey is returned when a write violates a uniqueness constraint
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidValue is returned when a write carries an out-of-range value
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotFound is returned when a record or a referenced parent does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDegraded marks a broken upstream reference chain in a read path
	ErrDegraded = errors.New("degraded reference chain")

	// ErrExportIncomplete marks an export row whose optional fields are unavailable
	ErrExportIncomplete = errors.New("export row incomplete")
)

// DuplicateKeyError names the entity and field combination that collided
type DuplicateKeyError struct {
	Entity string
	Fields []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrDuplicateKey, e.Entity, strings.Join(e.Fields, ", "))
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// InvalidValueError names the rejected field and, for enums, the accepted values
type InvalidValueError struct {
	Entity  string
	Field   string
	Value   string
	Allowed []string
}

// NewInvalidValueError builds an InvalidValueError for entity.field
func NewInvalidValueError(entity, field, value string, allowed ...string) *InvalidValueError {
	return &InvalidValueError{Entity: entity, Field: field, Value: value, Allowed: allowed}
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("%s: %s.%s=%q", ErrInvalidValue, e.Entity, e.Field, e.Value)
	if len(e.Allowed) > 0 {
		msg += " (allowed: " + strings.Join(e.Allowed, ", ") + ")"
	}
	return msg
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

// NotFoundError identifies the missing record
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Entity, ErrNotFound)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages maps validator tags to user-facing messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"uuid":     "Must be a valid UUID",
	"url":      "Must be a valid URL",
	"ip":       "Must be a valid IPv4 or IPv6 address",
	"oneof":    "Must be one of the allowed values",
	"slug":     "Must contain only letters, numbers, hyphens and underscores",
	"hours":    "Must be between 0 and 999.99 with at most two decimals",
	"date":     "Must be a date in YYYY-MM-DD format",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeBadRequest   = "bad_request"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeInternal     = "internal_error"
)
