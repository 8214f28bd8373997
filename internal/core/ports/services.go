package ports

import (
	"context"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// Every service operation returns its expected failures inside the Result.
// The error return is reserved for infrastructure faults.

// CustomerService defines the directory operations for customers.
type CustomerService interface {
	Create(ctx context.Context, params domain.CustomerParams) (result.Result[*domain.Customer], error)
	// GetByID and List include the tickets each customer owns.
	GetByID(ctx context.Context, id int64) (result.Result[*domain.CustomerDetails], error)
	List(ctx context.Context) (result.Result[[]domain.CustomerDetails], error)
	Update(ctx context.Context, id int64, params domain.CustomerParams) (result.Result[*domain.Customer], error)
	Delete(ctx context.Context, id int64) (result.Result[struct{}], error)
	// GetTicketsForCustomer returns every ticket the customer owns with
	// assignee and comments resolved.
	GetTicketsForCustomer(ctx context.Context, customerID int64) (result.Result[[]domain.TicketDetails], error)
}

// AgentService defines the directory operations for agents.
type AgentService interface {
	Create(ctx context.Context, params domain.AgentParams) (result.Result[*domain.Agent], error)
	// GetByID and List include the tickets assigned to each agent.
	GetByID(ctx context.Context, id int64) (result.Result[*domain.AgentDetails], error)
	List(ctx context.Context) (result.Result[[]domain.AgentDetails], error)
	Update(ctx context.Context, id int64, params domain.AgentParams) (result.Result[*domain.Agent], error)
	Delete(ctx context.Context, id int64) (result.Result[struct{}], error)
}

// CreateTicketParams defines the required input for creating a new ticket.
type CreateTicketParams struct {
	CustomerID  int64
	Title       string
	Description string
	Category    domain.TicketCategory
}

// UpdateTicketParams defines the input for editing a ticket's text.
type UpdateTicketParams struct {
	TicketID    int64
	Title       string
	Description string
}

// AssignTicketParams defines the input for assigning a ticket.
type AssignTicketParams struct {
	TicketID int64
	AgentID  int64
}

// TicketService defines the ticket lifecycle operations.
type TicketService interface {
	Create(ctx context.Context, params CreateTicketParams) (result.Result[*domain.Ticket], error)
	GetByID(ctx context.Context, id int64) (result.Result[*domain.TicketDetails], error)
	List(ctx context.Context) (result.Result[[]domain.TicketDetails], error)
	UpdateFields(ctx context.Context, params UpdateTicketParams) (result.Result[*domain.Ticket], error)
	AssignAgent(ctx context.Context, params AssignTicketParams) (result.Result[*domain.Ticket], error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (result.Result[*domain.Ticket], error)
	UpdateCategory(ctx context.Context, id int64, category domain.TicketCategory) (result.Result[*domain.Ticket], error)
	UpdatePriority(ctx context.Context, id int64, priority domain.TicketPriority) (result.Result[*domain.Ticket], error)
	Delete(ctx context.Context, id int64) (result.Result[struct{}], error)
}

// CreateCommentParams defines the input for creating a comment.
// Exactly one of AgentID and CustomerID must be set.
type CreateCommentParams struct {
	TicketID   int64
	Body       string
	AgentID    *int64
	CustomerID *int64
}

// CommentService defines the comment operations.
type CommentService interface {
	Create(ctx context.Context, params CreateCommentParams) (result.Result[*domain.Comment], error)
	GetByID(ctx context.Context, id int64) (result.Result[*domain.CommentDetails], error)
	List(ctx context.Context) (result.Result[[]domain.CommentDetails], error)
	Update(ctx context.Context, id int64, body string) (result.Result[*domain.Comment], error)
	Delete(ctx context.Context, id int64) (result.Result[struct{}], error)
	ListForTicket(ctx context.Context, ticketID int64) (result.Result[[]domain.CommentDetails], error)
}
