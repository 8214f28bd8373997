package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// AgentRepository is the secondary adapter for agent persistence.
type AgentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.AgentRepository = (*AgentRepository)(nil)

func NewAgentRepository(pool *pgxpool.Pool) ports.AgentRepository {
	return &AgentRepository{pool: pool}
}

const agentColumns = `id, display_name, email, created_at`

func (r *AgentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	const query = `
        INSERT INTO agents (display_name, email, created_at)
        VALUES ($1, $2, $3)
        RETURNING ` + agentColumns

	var a domain.Agent
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, agent.DisplayName, agent.Email, agent.CreatedAt).
		Scan(&a.ID, &a.DisplayName, &a.Email, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrAgentEmailTaken
		}
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	const query = `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

	var a domain.Agent
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, id).Scan(&a.ID, &a.DisplayName, &a.Email, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrAgentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) List(ctx context.Context) ([]*domain.Agent, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx, `SELECT `+agentColumns+` FROM agents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Agent, error) {
		var a domain.Agent
		err := row.Scan(&a.ID, &a.DisplayName, &a.Email, &a.CreatedAt)
		return &a, err
	})
}

func (r *AgentRepository) Update(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	const query = `
        UPDATE agents SET display_name = $1, email = $2
        WHERE id = $3
        RETURNING ` + agentColumns

	var a domain.Agent
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, agent.DisplayName, agent.Email, agent.ID).
		Scan(&a.ID, &a.DisplayName, &a.Email, &a.CreatedAt)
	if err != nil {
		switch {
		case isNoRows(err):
			return nil, apperrors.ErrAgentNotFound
		case isUniqueViolation(err):
			return nil, apperrors.ErrAgentEmailTaken
		}
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := GetDBTX(ctx, r.pool).Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrAgentNotFound
	}
	return nil
}

func (r *AgentRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM agents WHERE email = $1 AND id <> $2)`

	var taken bool
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, email, excludeID).Scan(&taken)
	return taken, err
}
