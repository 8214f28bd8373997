package services

import (
	"context"
	"log/slog"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// AgentService implements the agent directory.
type AgentService struct {
	agentRepo   ports.AgentRepository
	ticketRepo  ports.TicketRepository
	commentRepo ports.CommentRepository
	txManager   ports.TransactionManager
	logger      *slog.Logger
}

var _ ports.AgentService = (*AgentService)(nil)

func NewAgentService(
	agentRepo ports.AgentRepository,
	ticketRepo ports.TicketRepository,
	commentRepo ports.CommentRepository,
	txManager ports.TransactionManager,
	logger *slog.Logger,
) ports.AgentService {
	return &AgentService{
		agentRepo:   agentRepo,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *AgentService) Create(ctx context.Context, params domain.AgentParams) (result.Result[*domain.Agent], error) {
	agent, err := domain.NewAgent(params)
	if err != nil {
		return fail[*domain.Agent](err)
	}

	var created *domain.Agent
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.agentRepo.EmailTaken(ctx, agent.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrAgentEmailTaken
		}

		created, err = s.agentRepo.Create(ctx, agent)
		return err
	})
	if err != nil {
		return fail[*domain.Agent](err)
	}

	s.logger.InfoContext(ctx, "agent created", "agent_id", created.ID)
	return result.Ok(created), nil
}

// GetByID returns the agent with the tickets assigned to them.
func (s *AgentService) GetByID(ctx context.Context, id int64) (result.Result[*domain.AgentDetails], error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return failLookup[*domain.AgentDetails](ctx, s.logger, err, "agent_id", id)
	}

	tickets, err := s.ticketRepo.ListByAgent(ctx, id)
	if err != nil {
		return fail[*domain.AgentDetails](err)
	}
	return result.Ok(&domain.AgentDetails{Agent: agent, Tickets: tickets}), nil
}

func (s *AgentService) List(ctx context.Context) (result.Result[[]domain.AgentDetails], error) {
	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return fail[[]domain.AgentDetails](err)
	}
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		return fail[[]domain.AgentDetails](err)
	}

	assigned := make(map[int64][]*domain.Ticket)
	for _, ticket := range tickets {
		if ticket.AssignedAgentID != nil {
			assigned[*ticket.AssignedAgentID] = append(assigned[*ticket.AssignedAgentID], ticket)
		}
	}

	list := make([]domain.AgentDetails, 0, len(agents))
	for _, agent := range agents {
		list = append(list, domain.AgentDetails{Agent: agent, Tickets: assigned[agent.ID]})
	}
	return result.Ok(list), nil
}

func (s *AgentService) Update(ctx context.Context, id int64, params domain.AgentParams) (result.Result[*domain.Agent], error) {
	var updated *domain.Agent
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		agent, err := s.agentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := agent.Update(params); err != nil {
			return err
		}

		taken, err := s.agentRepo.EmailTaken(ctx, agent.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrAgentEmailTaken
		}

		updated, err = s.agentRepo.Update(ctx, agent)
		return err
	})
	if err != nil {
		return fail[*domain.Agent](err)
	}

	s.logger.InfoContext(ctx, "agent updated", "agent_id", id)
	return result.Ok(updated), nil
}

// Delete removes an agent who authored no comments. Tickets assigned to the
// agent become unassigned in the same commit.
func (s *AgentService) Delete(ctx context.Context, id int64) (result.Result[struct{}], error) {
	var unassigned int64
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.agentRepo.GetByID(ctx, id); err != nil {
			return err
		}

		hasComments, err := s.commentRepo.ExistsByAuthor(ctx, domain.AgentAuthor(id))
		if err != nil {
			return err
		}
		if hasComments {
			return apperrors.ErrAgentHasComments
		}

		unassigned, err = s.ticketRepo.UnassignAgent(ctx, id)
		if err != nil {
			return err
		}
		return s.agentRepo.Delete(ctx, id)
	})
	if err != nil {
		return fail[struct{}](err)
	}

	s.logger.InfoContext(ctx, "agent deleted", "agent_id", id, "tickets_unassigned", unassigned)
	return done(), nil
}
