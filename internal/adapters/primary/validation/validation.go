// Package validation checks the shape of incoming requests: well-formed JSON,
// numeric path ids and known enum names. Business rules stay in the domain.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

const maxBodyBytes = 1 << 20

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that reports fields by their JSON names and knows
// the ticket enum tags ticket_category, ticket_status and ticket_priority.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "ticket_category", func(fl validator.FieldLevel) bool {
		return domain.TicketCategory(fl.Field().String()).IsValid()
	})
	mustRegister(v, "ticket_status", func(fl validator.FieldLevel) bool {
		return domain.TicketStatus(fl.Field().String()).IsValid()
	})
	mustRegister(v, "ticket_priority", func(fl validator.FieldLevel) bool {
		return domain.TicketPriority(fl.Field().String()).IsValid()
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates s and returns *apperrors.ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := apperrors.NewValidationErrors()
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "ticket_category":
		return "Must be one of: " + joinNames(domain.TicketCategories)
	case "ticket_status":
		return "Must be one of: " + joinNames(domain.TicketStatuses)
	case "ticket_priority":
		return "Must be one of: " + joinNames(domain.TicketPriorities)
	default:
		return "Failed the " + fe.Tag() + " check"
	}
}

func joinNames[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

// DecodeAndValidate decodes the JSON request body into a T and validates it.
// Malformed bodies are reported as a validation failure on the "body" field.
func DecodeAndValidate[T any](r *http.Request, v *Validator) (*T, error) {
	var req T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		errs := apperrors.NewValidationErrors()
		errs.Add(bodyField(err), decodeMessage(err))
		return nil, errs
	}

	if err := v.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func bodyField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return "body"
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required"
	case errors.As(err, &typeErr):
		return "Must be of type " + typeErr.Type.String()
	default:
		return "Request body must be valid JSON"
	}
}

// ParseID reads a positive integer path parameter.
func ParseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errs := apperrors.NewValidationErrors()
		errs.Add(name, "Must be a positive integer")
		return 0, errs
	}
	return id, nil
}
