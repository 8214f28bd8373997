package domain

import (
	"net/mail"
	"strings"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

// Directory field limits
const (
	MaxNameLength  = 200
	MaxEmailLength = 320
)

// NormalizeEmail trims surrounding whitespace and lower-cases an email
// address, so uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string, required *apperrors.AppError) error {
	if strings.TrimSpace(name) == "" {
		return required
	}
	if len(name) > MaxNameLength {
		return apperrors.ErrNameTooLong
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.ErrEmailRequired
	}
	if len(email) > MaxEmailLength {
		return apperrors.ErrEmailTooLong
	}
	if !isValidEmail(email) {
		return apperrors.ErrEmailInvalid
	}
	return nil
}

// isValidEmail accepts bare addresses only, not "Name <addr>" forms.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
