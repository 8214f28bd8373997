package services

import (
	"context"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// detailsResolver builds read projections from the repositories. It
// remembers every customer and agent it loads, so create one per call.
type detailsResolver struct {
	customerRepo ports.CustomerRepository
	agentRepo    ports.AgentRepository
	commentRepo  ports.CommentRepository

	customers map[int64]*domain.Customer
	agents    map[int64]*domain.Agent
}

func newDetailsResolver(
	customerRepo ports.CustomerRepository,
	agentRepo ports.AgentRepository,
	commentRepo ports.CommentRepository,
) *detailsResolver {
	return &detailsResolver{
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
		commentRepo:  commentRepo,
		customers:    make(map[int64]*domain.Customer),
		agents:       make(map[int64]*domain.Agent),
	}
}

// remember seeds the customer cache with an already loaded customer.
func (r *detailsResolver) remember(customer *domain.Customer) {
	r.customers[customer.ID] = customer
}

func (r *detailsResolver) customer(ctx context.Context, id int64) (*domain.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	c, err := r.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.customers[id] = c
	return c, nil
}

func (r *detailsResolver) agent(ctx context.Context, id int64) (*domain.Agent, error) {
	if a, ok := r.agents[id]; ok {
		return a, nil
	}
	a, err := r.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.agents[id] = a
	return a, nil
}

func (r *detailsResolver) commentDetails(ctx context.Context, comment *domain.Comment, ticket *domain.Ticket) (domain.CommentDetails, error) {
	details := domain.CommentDetails{Comment: comment, Ticket: ticket}

	var err error
	if comment.Author.IsAgent() {
		details.Agent, err = r.agent(ctx, comment.Author.ID())
	} else {
		details.Customer, err = r.customer(ctx, comment.Author.ID())
	}
	if err != nil {
		return domain.CommentDetails{}, err
	}
	return details, nil
}

func (r *detailsResolver) commentsFor(ctx context.Context, ticket *domain.Ticket) ([]domain.CommentDetails, error) {
	comments, err := r.commentRepo.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	thread := make([]domain.CommentDetails, 0, len(comments))
	for _, comment := range comments {
		details, err := r.commentDetails(ctx, comment, ticket)
		if err != nil {
			return nil, err
		}
		thread = append(thread, details)
	}
	return thread, nil
}

func (r *detailsResolver) ticketDetails(ctx context.Context, ticket *domain.Ticket) (*domain.TicketDetails, error) {
	customer, err := r.customer(ctx, ticket.CustomerID)
	if err != nil {
		return nil, err
	}

	details := &domain.TicketDetails{Ticket: ticket, Customer: customer}
	if ticket.AssignedAgentID != nil {
		details.AssignedAgent, err = r.agent(ctx, *ticket.AssignedAgentID)
		if err != nil {
			return nil, err
		}
	}

	details.Comments, err = r.commentsFor(ctx, ticket)
	if err != nil {
		return nil, err
	}
	return details, nil
}
