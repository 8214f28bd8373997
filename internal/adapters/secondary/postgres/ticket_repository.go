package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// TicketRepository is the secondary adapter for ticket persistence.
type TicketRepository struct {
	pool *pgxpool.Pool
}

// Ensure TicketRepository implements the ports.TicketRepository interface.
var _ ports.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) ports.TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketColumns = `id, customer_id, assigned_agent_id, category, status, priority,
        title, description, created_at, updated_at`

// scanTicket converts a database row to a core domain model.
func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		t                          domain.Ticket
		category, status, priority string
	)
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.AssignedAgentID,
		&category,
		&status,
		&priority,
		&t.Title,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Category = domain.TicketCategory(category)
	t.Status = domain.TicketStatus(status)
	t.Priority = domain.TicketPriority(priority)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

// Create persists a new ticket entity.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
        INSERT INTO tickets (customer_id, assigned_agent_id, category, status, priority,
            title, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + ticketColumns

	return scanTicket(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		ticket.CustomerID,
		ticket.AssignedAgentID,
		string(ticket.Category),
		string(ticket.Status),
		string(ticket.Priority),
		ticket.Title,
		ticket.Description,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	))
}

// GetByID retrieves a single ticket by its ID.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(GetDBTX(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// Update persists changes to an existing ticket entity. The owner and
// creation time never change.
func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET assigned_agent_id = $1, category = $2, status = $3, priority = $4,
            title = $5, description = $6, updated_at = $7
        WHERE id = $8
        RETURNING ` + ticketColumns

	updated, err := scanTicket(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		ticket.AssignedAgentID,
		string(ticket.Category),
		string(ticket.Status),
		string(ticket.Priority),
		ticket.Title,
		ticket.Description,
		ticket.UpdatedAt,
		ticket.ID,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a ticket; comments go with it through ON DELETE CASCADE.
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := GetDBTX(ctx, r.pool).Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context) ([]*domain.Ticket, error) {
	return r.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
}

// ListByCustomer returns the customer's tickets, oldest first.
func (r *TicketRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Ticket, error) {
	return r.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE customer_id = $1 ORDER BY id`, customerID)
}

// ListByAgent returns the tickets currently assigned to the agent.
func (r *TicketRepository) ListByAgent(ctx context.Context, agentID int64) ([]*domain.Ticket, error) {
	return r.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE assigned_agent_id = $1 ORDER BY id`, agentID)
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]*domain.Ticket, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Ticket, error) {
		return scanTicket(row)
	})
}

func (r *TicketRepository) ExistsForCustomer(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := GetDBTX(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE customer_id = $1)`, customerID).
		Scan(&exists)
	return exists, err
}

func (r *TicketRepository) UnassignAgent(ctx context.Context, agentID int64) (int64, error) {
	const query = `
        UPDATE tickets SET assigned_agent_id = NULL, updated_at = $1
        WHERE assigned_agent_id = $2`

	cmd, err := GetDBTX(ctx, r.pool).Exec(ctx, query, time.Now().UTC(), agentID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
