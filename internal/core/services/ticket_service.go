package services

import (
	"context"
	"log/slog"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// TicketService implements business logic for the ticket lifecycle
type TicketService struct {
	ticketRepo   ports.TicketRepository
	customerRepo ports.CustomerRepository
	agentRepo    ports.AgentRepository
	commentRepo  ports.CommentRepository
	txManager    ports.TransactionManager
	logger       *slog.Logger
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo ports.TicketRepository,
	customerRepo ports.CustomerRepository,
	agentRepo ports.AgentRepository,
	commentRepo ports.CommentRepository,
	txManager ports.TransactionManager,
	logger *slog.Logger,
) ports.TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
		commentRepo:  commentRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create opens a new ticket for an existing customer.
func (s *TicketService) Create(ctx context.Context, params ports.CreateTicketParams) (result.Result[*domain.Ticket], error) {
	// 1. Create domain entity with validation
	ticket, err := domain.NewTicket(domain.TicketParams{
		CustomerID:  params.CustomerID,
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	// 2. Check the owner and persist
	var created *domain.Ticket
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.GetByID(ctx, params.CustomerID); err != nil {
			return err
		}
		created, err = s.ticketRepo.Create(ctx, ticket)
		return err
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	s.logger.InfoContext(ctx, "ticket created",
		"ticket_id", created.ID,
		"customer_id", created.CustomerID,
		"category", created.Category,
	)
	return result.Ok(created), nil
}

// GetByID returns the ticket with its customer, assignee and comments.
func (s *TicketService) GetByID(ctx context.Context, id int64) (result.Result[*domain.TicketDetails], error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return failLookup[*domain.TicketDetails](ctx, s.logger, err, "ticket_id", id)
	}

	details, err := newDetailsResolver(s.customerRepo, s.agentRepo, s.commentRepo).ticketDetails(ctx, ticket)
	if err != nil {
		return fail[*domain.TicketDetails](err)
	}
	return result.Ok(details), nil
}

// List returns every ticket with its customer, assignee and comments.
func (s *TicketService) List(ctx context.Context) (result.Result[[]domain.TicketDetails], error) {
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		return fail[[]domain.TicketDetails](err)
	}

	resolver := newDetailsResolver(s.customerRepo, s.agentRepo, s.commentRepo)
	list := make([]domain.TicketDetails, 0, len(tickets))
	for _, ticket := range tickets {
		details, err := resolver.ticketDetails(ctx, ticket)
		if err != nil {
			return fail[[]domain.TicketDetails](err)
		}
		list = append(list, *details)
	}
	return result.Ok(list), nil
}

// UpdateFields replaces title and description. Status, category, priority
// and assignment are left alone.
func (s *TicketService) UpdateFields(ctx context.Context, params ports.UpdateTicketParams) (result.Result[*domain.Ticket], error) {
	updated, err := s.mutate(ctx, params.TicketID, func(ctx context.Context, ticket *domain.Ticket) error {
		return ticket.UpdateDetails(params.Title, params.Description)
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	s.logger.InfoContext(ctx, "ticket updated", "ticket_id", updated.ID)
	return result.Ok(updated), nil
}

// AssignAgent sets or replaces the assigned agent. Checks run in order:
// ticket exists, ticket is not closed, agent exists.
func (s *TicketService) AssignAgent(ctx context.Context, params ports.AssignTicketParams) (result.Result[*domain.Ticket], error) {
	updated, err := s.mutate(ctx, params.TicketID, func(ctx context.Context, ticket *domain.Ticket) error {
		if ticket.IsClosed() {
			return apperrors.ErrCannotAssignClosed
		}
		if _, err := s.agentRepo.GetByID(ctx, params.AgentID); err != nil {
			return err
		}
		return ticket.Assign(params.AgentID)
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	s.logger.InfoContext(ctx, "ticket assigned", "ticket_id", updated.ID, "agent_id", params.AgentID)
	return result.Ok(updated), nil
}

// UpdateStatus moves the ticket to any status.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (result.Result[*domain.Ticket], error) {
	updated, err := s.mutate(ctx, id, func(_ context.Context, ticket *domain.Ticket) error {
		return ticket.ChangeStatus(status)
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	s.logger.InfoContext(ctx, "ticket status updated", "ticket_id", id, "status", status)
	return result.Ok(updated), nil
}

func (s *TicketService) UpdateCategory(ctx context.Context, id int64, category domain.TicketCategory) (result.Result[*domain.Ticket], error) {
	updated, err := s.mutate(ctx, id, func(_ context.Context, ticket *domain.Ticket) error {
		return ticket.ChangeCategory(category)
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	s.logger.InfoContext(ctx, "ticket category updated", "ticket_id", id, "category", category)
	return result.Ok(updated), nil
}

func (s *TicketService) UpdatePriority(ctx context.Context, id int64, priority domain.TicketPriority) (result.Result[*domain.Ticket], error) {
	updated, err := s.mutate(ctx, id, func(_ context.Context, ticket *domain.Ticket) error {
		return ticket.ChangePriority(priority)
	})
	if err != nil {
		return fail[*domain.Ticket](err)
	}

	s.logger.InfoContext(ctx, "ticket priority updated", "ticket_id", id, "priority", priority)
	return result.Ok(updated), nil
}

// Delete removes the ticket and its comments.
func (s *TicketService) Delete(ctx context.Context, id int64) (result.Result[struct{}], error) {
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ticketRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.ticketRepo.Delete(ctx, id)
	})
	if err != nil {
		return fail[struct{}](err)
	}

	s.logger.InfoContext(ctx, "ticket deleted", "ticket_id", id)
	return done(), nil
}

// mutate loads a ticket, applies change and saves it in one transaction.
func (s *TicketService) mutate(
	ctx context.Context,
	id int64,
	change func(ctx context.Context, ticket *domain.Ticket) error,
) (*domain.Ticket, error) {
	var updated *domain.Ticket
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		ticket, err := s.ticketRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := change(ctx, ticket); err != nil {
			return err
		}
		updated, err = s.ticketRepo.Update(ctx, ticket)
		return err
	})
	return updated, err
}
