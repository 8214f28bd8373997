package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// CustomerRepository implements ports.CustomerRepository with gorm.
type CustomerRepository struct {
	db *gorm.DB
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	row := customerModel{Name: customer.Name, Email: customer.Email, CreatedAt: customer.CreatedAt}
	if err := dbFromContext(ctx, r.db).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrCustomerEmailTaken
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var row customerModel
	if err := dbFromContext(ctx, r.db).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	var rows []customerModel
	if err := dbFromContext(ctx, r.db).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	res := dbFromContext(ctx, r.db).Model(&customerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{"name": customer.Name, "email": customer.Email})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, apperrors.ErrCustomerEmailTaken
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrCustomerNotFound
	}
	return r.GetByID(ctx, customer.ID)
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	res := dbFromContext(ctx, r.db).Delete(&customerModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int64
	err := dbFromContext(ctx, r.db).Model(&customerModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&n).Error
	return n > 0, err
}

// AgentRepository implements ports.AgentRepository with gorm.
type AgentRepository struct {
	db *gorm.DB
}

var _ ports.AgentRepository = (*AgentRepository)(nil)

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	row := agentModel{DisplayName: agent.DisplayName, Email: agent.Email, CreatedAt: agent.CreatedAt}
	if err := dbFromContext(ctx, r.db).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrAgentEmailTaken
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	var row agentModel
	if err := dbFromContext(ctx, r.db).First(&row, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrAgentNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AgentRepository) List(ctx context.Context) ([]*domain.Agent, error) {
	var rows []agentModel
	if err := dbFromContext(ctx, r.db).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Agent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AgentRepository) Update(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	res := dbFromContext(ctx, r.db).Model(&agentModel{}).
		Where("id = ?", agent.ID).
		Updates(map[string]any{"display_name": agent.DisplayName, "email": agent.Email})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, apperrors.ErrAgentEmailTaken
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrAgentNotFound
	}
	return r.GetByID(ctx, agent.ID)
}

func (r *AgentRepository) Delete(ctx context.Context, id int64) error {
	res := dbFromContext(ctx, r.db).Delete(&agentModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAgentNotFound
	}
	return nil
}

func (r *AgentRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int64
	err := dbFromContext(ctx, r.db).Model(&agentModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&n).Error
	return n > 0, err
}
