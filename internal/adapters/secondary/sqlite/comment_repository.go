package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// CommentRepository implements ports.CommentRepository with gorm.
type CommentRepository struct {
	db *gorm.DB
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	row := commentModel{
		TicketID:   comment.TicketID,
		AgentID:    comment.Author.AgentID(),
		CustomerID: comment.Author.CustomerID(),
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
	if err := dbFromContext(ctx, r.db).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var row commentModel
	if err := dbFromContext(ctx, r.db).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return row.toDomain()
}

// Update persists a new body; author and timestamps are immutable.
func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	res := dbFromContext(ctx, r.db).Model(&commentModel{}).
		Where("id = ?", comment.ID).
		Update("body", comment.Body)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrCommentNotFound
	}
	return r.GetByID(ctx, comment.ID)
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res := dbFromContext(ctx, r.db).Delete(&commentModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) List(ctx context.Context) ([]*domain.Comment, error) {
	return findComments(dbFromContext(ctx, r.db).Order("id asc"))
}

// ListByTicket returns all comments for a ticket, oldest first.
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*domain.Comment, error) {
	return findComments(dbFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at asc, id asc"))
}

func findComments(q *gorm.DB) ([]*domain.Comment, error) {
	var rows []commentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, 0, len(rows))
	for _, row := range rows {
		comment, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *CommentRepository) ExistsByAuthor(ctx context.Context, author domain.Author) (bool, error) {
	column := "customer_id"
	if author.IsAgent() {
		column = "agent_id"
	}

	var n int64
	err := dbFromContext(ctx, r.db).Model(&commentModel{}).
		Where(column+" = ?", author.ID()).
		Count(&n).Error
	return n > 0, err
}
