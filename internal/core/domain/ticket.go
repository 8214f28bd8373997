package domain

import (
	"strings"
	"time"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

// Ticket field limits
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 10000
)

// TicketCategory classifies what a ticket is about.
type TicketCategory string

const (
	CategoryBilling        TicketCategory = "BILLING"
	CategoryPerformance    TicketCategory = "PERFORMANCE"
	CategoryAccess         TicketCategory = "ACCESS"
	CategoryBug            TicketCategory = "BUG"
	CategoryFeatureRequest TicketCategory = "FEATURE_REQUEST"
	CategoryOther          TicketCategory = "OTHER"
)

// TicketCategories lists every category in declaration order.
var TicketCategories = []TicketCategory{
	CategoryBilling,
	CategoryPerformance,
	CategoryAccess,
	CategoryBug,
	CategoryFeatureRequest,
	CategoryOther,
}

func (c TicketCategory) IsValid() bool {
	switch c {
	case CategoryBilling, CategoryPerformance, CategoryAccess,
		CategoryBug, CategoryFeatureRequest, CategoryOther:
		return true
	}
	return false
}

// TicketStatus represents the possible states of a ticket.
type TicketStatus string

const (
	StatusOpen              TicketStatus = "OPEN"
	StatusInProgress        TicketStatus = "IN_PROGRESS"
	StatusWaitingOnCustomer TicketStatus = "WAITING_ON_CUSTOMER"
	StatusResolved          TicketStatus = "RESOLVED"
	StatusClosed            TicketStatus = "CLOSED"
)

var TicketStatuses = []TicketStatus{
	StatusOpen,
	StatusInProgress,
	StatusWaitingOnCustomer,
	StatusResolved,
	StatusClosed,
}

func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusWaitingOnCustomer, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityCritical TicketPriority = "CRITICAL"
)

var TicketPriorities = []TicketPriority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Ticket is the core domain entity.
type Ticket struct {
	ID              int64
	CustomerID      int64
	AssignedAgentID *int64
	Category        TicketCategory
	Status          TicketStatus
	Priority        TicketPriority
	Title           string
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TicketParams holds parameters for opening a ticket
type TicketParams struct {
	CustomerID  int64
	Title       string
	Description string
	Category    TicketCategory
}

// Validate validates ticket creation parameters
func (p TicketParams) Validate() error {
	if err := validateTicketText(p.Title, p.Description); err != nil {
		return err
	}
	if !p.Category.IsValid() {
		return apperrors.ErrInvalidCategory
	}
	return nil
}

func validateTicketText(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.ErrTitleRequired
	}
	if len(title) > MaxTitleLength {
		return apperrors.ErrTitleTooLong
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.ErrDescriptionRequired
	}
	if len(description) > MaxDescriptionLength {
		return apperrors.ErrDescriptionTooLong
	}
	return nil
}

// NewTicket opens a ticket. New tickets are always OPEN, MEDIUM and unassigned.
func NewTicket(params TicketParams) (*Ticket, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Ticket{
		CustomerID:  params.CustomerID,
		Category:    params.Category,
		Status:      StatusOpen,
		Priority:    PriorityMedium,
		Title:       params.Title,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsClosed reports whether the ticket is CLOSED.
func (t *Ticket) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsSettled reports whether category and priority are frozen.
func (t *Ticket) IsSettled() bool {
	return t.Status == StatusResolved || t.Status == StatusClosed
}

// IsOwnedBy reports whether customerID opened the ticket.
func (t *Ticket) IsOwnedBy(customerID int64) bool {
	return t.CustomerID == customerID
}

// UpdateDetails replaces title and description.
func (t *Ticket) UpdateDetails(title, description string) error {
	if err := validateTicketText(title, description); err != nil {
		return err
	}
	t.Title = title
	t.Description = description
	t.Touch()
	return nil
}

// Assign sets or changes the assigned agent.
func (t *Ticket) Assign(agentID int64) error {
	if t.IsClosed() {
		return apperrors.ErrCannotAssignClosed
	}
	t.AssignedAgentID = &agentID
	t.Touch()
	return nil
}

// Unassign clears the assigned agent.
func (t *Ticket) Unassign() {
	t.AssignedAgentID = nil
	t.Touch()
}

// ChangeStatus moves the ticket to any status; there is no transition graph.
func (t *Ticket) ChangeStatus(status TicketStatus) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	t.Status = status
	t.Touch()
	return nil
}

func (t *Ticket) ChangeCategory(category TicketCategory) error {
	if !category.IsValid() {
		return apperrors.ErrInvalidCategory
	}
	if t.IsSettled() {
		return apperrors.ErrCategoryLocked
	}
	t.Category = category
	t.Touch()
	return nil
}

func (t *Ticket) ChangePriority(priority TicketPriority) error {
	if !priority.IsValid() {
		return apperrors.ErrInvalidPriority
	}
	if t.IsSettled() {
		return apperrors.ErrPriorityLocked
	}
	t.Priority = priority
	t.Touch()
	return nil
}

// Touch records activity on the ticket. UpdatedAt strictly advances at
// microsecond resolution, the finest the stores keep.
func (t *Ticket) Touch() {
	now := time.Now().UTC()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now
}
