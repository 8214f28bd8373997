package domain

import (
	"strings"
	"time"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

// Agent is a support staff member who can be assigned tickets.
type Agent struct {
	ID          int64
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// AgentParams holds the writable fields of an agent.
type AgentParams struct {
	DisplayName string
	Email       string
}

func (p *AgentParams) Normalize() {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Email = NormalizeEmail(p.Email)
}

func (p AgentParams) Validate() error {
	if err := validateName(p.DisplayName, apperrors.ErrDisplayNameRequired); err != nil {
		return err
	}
	return validateEmail(p.Email)
}

// NewAgent creates an agent from normalized, validated params.
func NewAgent(params AgentParams) (*Agent, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Agent{
		DisplayName: params.DisplayName,
		Email:       params.Email,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Update replaces the agent's display name and email.
func (a *Agent) Update(params AgentParams) error {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return err
	}
	a.DisplayName = params.DisplayName
	a.Email = params.Email
	return nil
}
