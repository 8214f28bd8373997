package ports

import (
	"context"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
)

// TransactionManager runs fn as one unit of work. Repositories called with
// the ctx handed to fn join the transaction; returning an error rolls it back.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CustomerRepository defines the persistence port for customers.
// Lookups of an absent id return apperrors.ErrCustomerNotFound.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	// EmailTaken reports whether another customer uses email. excludeID 0 excludes nobody.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// AgentRepository defines the persistence port for agents.
// Lookups of an absent id return apperrors.ErrAgentNotFound.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// TicketRepository defines the persistence port for tickets.
// Lookups of an absent id return apperrors.ErrTicketNotFound.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	// Delete removes the ticket together with its comments.
	Delete(ctx context.Context, id int64) error
	// List and the ListBy variants return tickets in id order.
	List(ctx context.Context) ([]*domain.Ticket, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Ticket, error)
	ListByAgent(ctx context.Context, agentID int64) ([]*domain.Ticket, error)
	ExistsForCustomer(ctx context.Context, customerID int64) (bool, error)
	// UnassignAgent clears the assignment on every ticket held by agentID
	// and returns how many tickets changed.
	UnassignAgent(ctx context.Context, agentID int64) (int64, error)
}

// CommentRepository defines the persistence port for comments.
// Lookups of an absent id return apperrors.ErrCommentNotFound.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	// List returns every comment in id order.
	List(ctx context.Context) ([]*domain.Comment, error)
	// ListByTicket returns a ticket's comments oldest first.
	ListByTicket(ctx context.Context, ticketID int64) ([]*domain.Comment, error)
	ExistsByAuthor(ctx context.Context, author domain.Author) (bool, error)
}
