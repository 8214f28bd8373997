package domain

import (
	"strings"
	"time"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

// Customer is a person who opens tickets.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// CustomerParams holds the writable fields of a customer.
type CustomerParams struct {
	Name  string
	Email string
}

// Normalize trims the name and email in place.
func (p *CustomerParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
}

// Validate returns the first rule the params break, if any.
func (p CustomerParams) Validate() error {
	if err := validateName(p.Name, apperrors.ErrNameRequired); err != nil {
		return err
	}
	return validateEmail(p.Email)
}

// NewCustomer creates a customer from normalized, validated params.
func NewCustomer(params CustomerParams) (*Customer, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Customer{
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Update replaces the customer's name and email.
func (c *Customer) Update(params CustomerParams) error {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return err
	}
	c.Name = params.Name
	c.Email = params.Email
	return nil
}
