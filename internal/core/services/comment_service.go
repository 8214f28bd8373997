package services

import (
	"context"
	"log/slog"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// CommentService implements the business logic for comments.
type CommentService struct {
	commentRepo  ports.CommentRepository
	ticketRepo   ports.TicketRepository
	customerRepo ports.CustomerRepository
	agentRepo    ports.AgentRepository
	txManager    ports.TransactionManager
	logger       *slog.Logger
}

// Ensure implementation matches the interface.
var _ ports.CommentService = (*CommentService)(nil)

// NewCommentService creates a new service for comment logic.
func NewCommentService(
	commentRepo ports.CommentRepository,
	ticketRepo ports.TicketRepository,
	customerRepo ports.CustomerRepository,
	agentRepo ports.AgentRepository,
	txManager ports.TransactionManager,
	logger *slog.Logger,
) ports.CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		ticketRepo:   ticketRepo,
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create adds a comment to a ticket and records the activity on the ticket.
func (s *CommentService) Create(ctx context.Context, params ports.CreateCommentParams) (result.Result[*domain.Comment], error) {
	// 1. Shape checks that need no lookups.
	if err := domain.ValidateCommentBody(params.Body); err != nil {
		return fail[*domain.Comment](err)
	}
	author, err := domain.NewAuthor(params.AgentID, params.CustomerID)
	if err != nil {
		return fail[*domain.Comment](err)
	}

	// 2. Ticket state, ownership and author, then one commit for both rows.
	var created *domain.Comment
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
		if err != nil {
			return err
		}
		if ticket.IsClosed() {
			return apperrors.ErrCannotCommentClosed
		}
		if author.IsCustomer() && !ticket.IsOwnedBy(author.ID()) {
			return apperrors.ErrCustomerNotTicketOwner
		}
		if err := s.authorExists(ctx, author); err != nil {
			return err
		}

		comment, err := domain.NewComment(domain.CommentParams{
			TicketID: ticket.ID,
			Author:   author,
			Body:     params.Body,
		})
		if err != nil {
			return err
		}
		if created, err = s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}

		ticket.Touch()
		_, err = s.ticketRepo.Update(ctx, ticket)
		return err
	})
	if err != nil {
		return fail[*domain.Comment](err)
	}

	s.logger.InfoContext(ctx, "comment created",
		"comment_id", created.ID,
		"ticket_id", created.TicketID,
		"author_kind", author.Kind(),
		"author_id", author.ID(),
	)
	return result.Ok(created), nil
}

func (s *CommentService) authorExists(ctx context.Context, author domain.Author) error {
	if author.IsAgent() {
		_, err := s.agentRepo.GetByID(ctx, author.ID())
		return err
	}
	_, err := s.customerRepo.GetByID(ctx, author.ID())
	return err
}

// GetByID returns the comment with its ticket and author.
func (s *CommentService) GetByID(ctx context.Context, id int64) (result.Result[*domain.CommentDetails], error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return failLookup[*domain.CommentDetails](ctx, s.logger, err, "comment_id", id)
	}

	ticket, err := s.ticketRepo.GetByID(ctx, comment.TicketID)
	if err != nil {
		return fail[*domain.CommentDetails](err)
	}

	details, err := newDetailsResolver(s.customerRepo, s.agentRepo, s.commentRepo).commentDetails(ctx, comment, ticket)
	if err != nil {
		return fail[*domain.CommentDetails](err)
	}
	return result.Ok(&details), nil
}

// List returns every comment with its ticket and author.
func (s *CommentService) List(ctx context.Context) (result.Result[[]domain.CommentDetails], error) {
	comments, err := s.commentRepo.List(ctx)
	if err != nil {
		return fail[[]domain.CommentDetails](err)
	}

	resolver := newDetailsResolver(s.customerRepo, s.agentRepo, s.commentRepo)
	tickets := make(map[int64]*domain.Ticket)
	list := make([]domain.CommentDetails, 0, len(comments))
	for _, comment := range comments {
		ticket, ok := tickets[comment.TicketID]
		if !ok {
			ticket, err = s.ticketRepo.GetByID(ctx, comment.TicketID)
			if err != nil {
				return fail[[]domain.CommentDetails](err)
			}
			tickets[ticket.ID] = ticket
		}

		details, err := resolver.commentDetails(ctx, comment, ticket)
		if err != nil {
			return fail[[]domain.CommentDetails](err)
		}
		list = append(list, details)
	}
	return result.Ok(list), nil
}

// Update replaces the body of a comment whose ticket is not closed.
func (s *CommentService) Update(ctx context.Context, id int64, body string) (result.Result[*domain.Comment], error) {
	var updated *domain.Comment
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		comment, err := s.commentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := comment.Edit(body); err != nil {
			return err
		}

		ticket, err := s.ticketRepo.GetByID(ctx, comment.TicketID)
		if err != nil {
			return err
		}
		if ticket.IsClosed() {
			return apperrors.ErrCannotEditClosed
		}

		updated, err = s.commentRepo.Update(ctx, comment)
		return err
	})
	if err != nil {
		return fail[*domain.Comment](err)
	}

	s.logger.InfoContext(ctx, "comment updated", "comment_id", id)
	return result.Ok(updated), nil
}

// Delete removes a comment regardless of the ticket's status.
func (s *CommentService) Delete(ctx context.Context, id int64) (result.Result[struct{}], error) {
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.commentRepo.Delete(ctx, id)
	})
	if err != nil {
		return fail[struct{}](err)
	}

	s.logger.InfoContext(ctx, "comment deleted", "comment_id", id)
	return done(), nil
}

// ListForTicket returns a ticket's thread oldest first.
func (s *CommentService) ListForTicket(ctx context.Context, ticketID int64) (result.Result[[]domain.CommentDetails], error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return failLookup[[]domain.CommentDetails](ctx, s.logger, err, "ticket_id", ticketID)
	}

	thread, err := newDetailsResolver(s.customerRepo, s.agentRepo, s.commentRepo).commentsFor(ctx, ticket)
	if err != nil {
		return fail[[]domain.CommentDetails](err)
	}
	return result.Ok(thread), nil
}
