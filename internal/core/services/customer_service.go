package services

import (
	"context"
	"log/slog"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// CustomerService implements the customer directory and the customer ticket query.
type CustomerService struct {
	customerRepo ports.CustomerRepository
	agentRepo    ports.AgentRepository
	ticketRepo   ports.TicketRepository
	commentRepo  ports.CommentRepository
	txManager    ports.TransactionManager
	logger       *slog.Logger
}

var _ ports.CustomerService = (*CustomerService)(nil)

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo ports.CustomerRepository,
	agentRepo ports.AgentRepository,
	ticketRepo ports.TicketRepository,
	commentRepo ports.CommentRepository,
	txManager ports.TransactionManager,
	logger *slog.Logger,
) ports.CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
		ticketRepo:   ticketRepo,
		commentRepo:  commentRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create registers a customer with a unique email.
func (s *CustomerService) Create(ctx context.Context, params domain.CustomerParams) (result.Result[*domain.Customer], error) {
	customer, err := domain.NewCustomer(params)
	if err != nil {
		return fail[*domain.Customer](err)
	}

	var created *domain.Customer
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.customerRepo.EmailTaken(ctx, customer.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrCustomerEmailTaken
		}

		created, err = s.customerRepo.Create(ctx, customer)
		return err
	})
	if err != nil {
		return fail[*domain.Customer](err)
	}

	s.logger.InfoContext(ctx, "customer created", "customer_id", created.ID)
	return result.Ok(created), nil
}

// GetByID returns the customer with the tickets they own.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (result.Result[*domain.CustomerDetails], error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return failLookup[*domain.CustomerDetails](ctx, s.logger, err, "customer_id", id)
	}

	tickets, err := s.ticketRepo.ListByCustomer(ctx, id)
	if err != nil {
		return fail[*domain.CustomerDetails](err)
	}
	return result.Ok(&domain.CustomerDetails{Customer: customer, Tickets: tickets}), nil
}

// List returns every customer with the tickets they own.
func (s *CustomerService) List(ctx context.Context) (result.Result[[]domain.CustomerDetails], error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return fail[[]domain.CustomerDetails](err)
	}
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		return fail[[]domain.CustomerDetails](err)
	}

	owned := make(map[int64][]*domain.Ticket)
	for _, ticket := range tickets {
		owned[ticket.CustomerID] = append(owned[ticket.CustomerID], ticket)
	}

	list := make([]domain.CustomerDetails, 0, len(customers))
	for _, customer := range customers {
		list = append(list, domain.CustomerDetails{Customer: customer, Tickets: owned[customer.ID]})
	}
	return result.Ok(list), nil
}

// Update replaces name and email. The email must stay unique among other customers.
func (s *CustomerService) Update(ctx context.Context, id int64, params domain.CustomerParams) (result.Result[*domain.Customer], error) {
	var updated *domain.Customer
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := customer.Update(params); err != nil {
			return err
		}

		taken, err := s.customerRepo.EmailTaken(ctx, customer.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrCustomerEmailTaken
		}

		updated, err = s.customerRepo.Update(ctx, customer)
		return err
	})
	if err != nil {
		return fail[*domain.Customer](err)
	}

	s.logger.InfoContext(ctx, "customer updated", "customer_id", id)
	return result.Ok(updated), nil
}

// Delete removes a customer who owns no tickets.
func (s *CustomerService) Delete(ctx context.Context, id int64) (result.Result[struct{}], error) {
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
			return err
		}

		hasTickets, err := s.ticketRepo.ExistsForCustomer(ctx, id)
		if err != nil {
			return err
		}
		if hasTickets {
			return apperrors.ErrCustomerHasTickets
		}

		return s.customerRepo.Delete(ctx, id)
	})
	if err != nil {
		return fail[struct{}](err)
	}

	s.logger.InfoContext(ctx, "customer deleted", "customer_id", id)
	return done(), nil
}

// GetTicketsForCustomer fails with NOT_FOUND for an unknown customer rather
// than returning an empty list.
func (s *CustomerService) GetTicketsForCustomer(ctx context.Context, customerID int64) (result.Result[[]domain.TicketDetails], error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return failLookup[[]domain.TicketDetails](ctx, s.logger, err, "customer_id", customerID)
	}

	tickets, err := s.ticketRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return fail[[]domain.TicketDetails](err)
	}

	resolver := newDetailsResolver(s.customerRepo, s.agentRepo, s.commentRepo)
	resolver.remember(customer)

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
