package sqlite

import (
	"time"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
)

type customerModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
}

func (customerModel) TableName() string {
	return "customers"
}

func (m customerModel) toDomain() *domain.Customer {
	return &domain.Customer{ID: m.ID, Name: m.Name, Email: m.Email, CreatedAt: m.CreatedAt.UTC()}
}

type agentModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DisplayName string    `gorm:"column:display_name;not null"`
	Email       string    `gorm:"column:email;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
}

func (agentModel) TableName() string {
	return "agents"
}

func (m agentModel) toDomain() *domain.Agent {
	return &domain.Agent{ID: m.ID, DisplayName: m.DisplayName, Email: m.Email, CreatedAt: m.CreatedAt.UTC()}
}

type ticketModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID      int64     `gorm:"column:customer_id;not null"`
	AssignedAgentID *int64    `gorm:"column:assigned_agent_id"`
	Category        string    `gorm:"column:category;not null"`
	Status          string    `gorm:"column:status;not null"`
	Priority        string    `gorm:"column:priority;not null"`
	Title           string    `gorm:"column:title;not null"`
	Description     string    `gorm:"column:description;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (ticketModel) TableName() string {
	return "tickets"
}

func ticketFromDomain(t *domain.Ticket) ticketModel {
	return ticketModel{
		ID:              t.ID,
		CustomerID:      t.CustomerID,
		AssignedAgentID: t.AssignedAgentID,
		Category:        string(t.Category),
		Status:          string(t.Status),
		Priority:        string(t.Priority),
		Title:           t.Title,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func (m ticketModel) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		AssignedAgentID: m.AssignedAgentID,
		Category:        domain.TicketCategory(m.Category),
		Status:          domain.TicketStatus(m.Status),
		Priority:        domain.TicketPriority(m.Priority),
		Title:           m.Title,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type commentModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TicketID   int64     `gorm:"column:ticket_id;not null"`
	AgentID    *int64    `gorm:"column:agent_id"`
	CustomerID *int64    `gorm:"column:customer_id"`
	Body       string    `gorm:"column:body;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
}

func (commentModel) TableName() string {
	return "comments"
}

func (m commentModel) toDomain() (*domain.Comment, error) {
	author, err := domain.NewAuthor(m.AgentID, m.CustomerID)
	if err != nil {
		return nil, err
	}
	return &domain.Comment{
		ID:        m.ID,
		TicketID:  m.TicketID,
		Author:    author,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}
