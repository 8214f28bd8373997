package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// TicketRepository implements ports.TicketRepository with gorm.
type TicketRepository struct {
	db *gorm.DB
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	row := ticketFromDomain(ticket)
	row.ID = 0
	if err := dbFromContext(ctx, r.db).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var row ticketModel
	if err := dbFromContext(ctx, r.db).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// Update writes every mutable column. The owner and creation time never change.
func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	res := dbFromContext(ctx, r.db).Model(&ticketModel{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]any{
			"assigned_agent_id": ticket.AssignedAgentID,
			"category":          string(ticket.Category),
			"status":            string(ticket.Status),
			"priority":          string(ticket.Priority),
			"title":             ticket.Title,
			"description":       ticket.Description,
			"updated_at":        ticket.UpdatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrTicketNotFound
	}
	return r.GetByID(ctx, ticket.ID)
}

// Delete removes the ticket's comments and then the ticket.
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	return dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&commentModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&ticketModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTicketNotFound
		}
		return nil
	})
}

func (r *TicketRepository) List(ctx context.Context) ([]*domain.Ticket, error) {
	return findTickets(dbFromContext(ctx, r.db))
}

// ListByCustomer returns the customer's tickets, oldest first.
func (r *TicketRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Ticket, error) {
	return findTickets(dbFromContext(ctx, r.db).Where("customer_id = ?", customerID))
}

// ListByAgent returns the tickets currently assigned to the agent.
func (r *TicketRepository) ListByAgent(ctx context.Context, agentID int64) ([]*domain.Ticket, error) {
	return findTickets(dbFromContext(ctx, r.db).Where("assigned_agent_id = ?", agentID))
}

func findTickets(q *gorm.DB) ([]*domain.Ticket, error) {
	var rows []ticketModel
	if err := q.Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	tickets := make([]*domain.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, row.toDomain())
	}
	return tickets, nil
}

func (r *TicketRepository) ExistsForCustomer(ctx context.Context, customerID int64) (bool, error) {
	var n int64
	err := dbFromContext(ctx, r.db).Model(&ticketModel{}).
		Where("customer_id = ?", customerID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *TicketRepository) UnassignAgent(ctx context.Context, agentID int64) (int64, error) {
	res := dbFromContext(ctx, r.db).Model(&ticketModel{}).
		Where("assigned_agent_id = ?", agentID).
		Updates(map[string]any{
			"assigned_agent_id": nil,
			"updated_at":        time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
