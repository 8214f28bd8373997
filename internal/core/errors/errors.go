package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an expected failure of a core operation.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindNotFound      Kind = "NOT_FOUND"
	KindConflict      Kind = "CONFLICT"
	KindInvalidState  Kind = "INVALID_STATE"
	KindAuthorization Kind = "AUTHORIZATION_ERROR"
)

// Domain errors - these represent business rule violations
var (
	// Directory validation
	ErrNameRequired        = NewValidationError("name is required")
	ErrDisplayNameRequired = NewValidationError("display name is required")
	ErrEmailRequired       = NewValidationError("email is required")
	ErrEmailInvalid        = NewValidationError("email format is invalid")
	ErrNameTooLong         = NewValidationError("name exceeds maximum length of 200 characters")
	ErrEmailTooLong        = NewValidationError("email exceeds maximum length of 320 characters")

	// Directory lookups & conflicts
	ErrCustomerNotFound   = NewNotFoundError("customer not found")
	ErrAgentNotFound      = NewNotFoundError("agent not found")
	ErrCustomerEmailTaken = NewConflictError("a customer with that email already exists")
	ErrAgentEmailTaken    = NewConflictError("an agent with that email already exists")
	ErrCustomerHasTickets = NewConflictError("customer still owns tickets")
	ErrAgentHasComments   = NewConflictError("agent still has authored comments")

	// Ticket validation
	ErrTicketNotFound      = NewNotFoundError("ticket not found")
	ErrTitleRequired       = NewValidationError("title is required")
	ErrTitleTooLong        = NewValidationError("title exceeds maximum length of 200 characters")
	ErrDescriptionRequired = NewValidationError("description is required")
	ErrDescriptionTooLong  = NewValidationError("description exceeds maximum length")
	ErrInvalidCategory     = NewValidationError("invalid ticket category")
	ErrInvalidStatus       = NewValidationError("invalid ticket status")
	ErrInvalidPriority     = NewValidationError("invalid ticket priority")
	ErrCannotAssignClosed  = NewInvalidStateError("cannot assign an agent to a closed ticket")
	ErrCategoryLocked      = NewInvalidStateError("cannot change category of a resolved or closed ticket")
	ErrPriorityLocked      = NewInvalidStateError("cannot change priority of a resolved or closed ticket")

	// Comment validation
	ErrCommentNotFound        = NewNotFoundError("comment not found")
	ErrCommentBodyRequired    = NewValidationError("comment body cannot be empty")
	ErrCommentBodyTooLong     = NewValidationError("comment body exceeds maximum length")
	ErrAuthorRequired         = NewValidationError("comment author is required: set exactly one of agentId or customerId")
	ErrAuthorAmbiguous        = NewValidationError("comment author is ambiguous: set exactly one of agentId or customerId")
	ErrCannotCommentClosed    = NewInvalidStateError("cannot add comments to a closed ticket")
	ErrCannotEditClosed       = NewInvalidStateError("cannot edit comments on a closed ticket")
	ErrCustomerNotTicketOwner = NewAuthorizationError("a customer can only comment on their own tickets")
)

// AppError is an expected, typed failure of a core operation.
type AppError struct {
	Kind    Kind   // Failure category
	Message string // Human-readable message
	Err     error  // Optional underlying cause
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind and message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Error constructors for common cases
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewInvalidStateError(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

// As extracts an *AppError from err, if one is present in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" if err carries no AppError.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
