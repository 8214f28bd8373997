package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// CommentRepository is the secondary adapter for comment persistence.
type CommentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(pool *pgxpool.Pool) ports.CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `id, ticket_id, agent_id, customer_id, body, created_at`

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var (
		c                   domain.Comment
		agentID, customerID *int64
	)
	if err := row.Scan(&c.ID, &c.TicketID, &agentID, &customerID, &c.Body, &c.CreatedAt); err != nil {
		return nil, err
	}

	author, err := domain.NewAuthor(agentID, customerID)
	if err != nil {
		return nil, fmt.Errorf("comment %d has a malformed author: %w", c.ID, err)
	}
	c.Author = author
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	const query = `
        INSERT INTO comments (ticket_id, agent_id, customer_id, body, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + commentColumns

	return scanComment(GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		comment.TicketID,
		comment.Author.AgentID(),
		comment.Author.CustomerID(),
		comment.Body,
		comment.CreatedAt,
	))
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(GetDBTX(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// Update persists a new body; author and timestamps are immutable.
func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	const query = `UPDATE comments SET body = $1 WHERE id = $2 RETURNING ` + commentColumns

	updated, err := scanComment(GetDBTX(ctx, r.pool).QueryRow(ctx, query, comment.Body, comment.ID))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := GetDBTX(ctx, r.pool).Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) List(ctx context.Context) ([]*domain.Comment, error) {
	return r.queryComments(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY id`)
}

// ListByTicket returns all comments for a ticket, oldest first.
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*domain.Comment, error) {
	return r.queryComments(ctx, `SELECT `+commentColumns+` FROM comments WHERE ticket_id = $1 ORDER BY created_at, id`, ticketID)
}

func (r *CommentRepository) queryComments(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Comment, error) {
		return scanComment(row)
	})
}

func (r *CommentRepository) ExistsByAuthor(ctx context.Context, author domain.Author) (bool, error) {
	column := "customer_id"
	if author.IsAgent() {
		column = "agent_id"
	}
	query := `SELECT EXISTS (SELECT 1 FROM comments WHERE ` + column + ` = $1)`

	var exists bool
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, author.ID()).Scan(&exists)
	return exists, err
}
