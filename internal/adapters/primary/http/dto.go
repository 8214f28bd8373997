package http

import (
	"time"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
)

// --- Requests ---

// CustomerRequest is the body of customer create and update.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r CustomerRequest) params() domain.CustomerParams {
	return domain.CustomerParams{Name: r.Name, Email: r.Email}
}

// AgentRequest is the body of agent create and update.
type AgentRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (r AgentRequest) params() domain.AgentParams {
	return domain.AgentParams{DisplayName: r.DisplayName, Email: r.Email}
}

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	CustomerID  int64  `json:"customerId" validate:"gt=0"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,ticket_category"`
}

// UpdateTicketRequest edits a ticket's text.
type UpdateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateStatusRequest defines the expected JSON body for status updates
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,ticket_status"`
}

type UpdateCategoryRequest struct {
	Category string `json:"category" validate:"required,ticket_category"`
}

type UpdatePriorityRequest struct {
	Priority string `json:"priority" validate:"required,ticket_priority"`
}

// CreateCommentRequest names the author by exactly one of agentId and customerId.
type CreateCommentRequest struct {
	TicketID   int64  `json:"ticketId" validate:"gt=0"`
	Body       string `json:"body"`
	AgentID    *int64 `json:"agentId" validate:"omitempty,gt=0"`
	CustomerID *int64 `json:"customerId" validate:"omitempty,gt=0"`
}

type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// --- Responses ---

type CustomerDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCustomerDTO(c *domain.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, Name: c.Name, Email: c.Email, CreatedAt: c.CreatedAt}
}

func toCustomerDTOPtr(c *domain.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	dto := toCustomerDTO(c)
	return &dto
}

// CustomerDetailsDTO is a customer with the tickets they own.
type CustomerDetailsDTO struct {
	CustomerDTO
	Tickets []TicketDTO `json:"tickets"`
}

func toCustomerDetailsDTO(d domain.CustomerDetails) CustomerDetailsDTO {
	return CustomerDetailsDTO{CustomerDTO: toCustomerDTO(d.Customer), Tickets: toTicketDTOs(d.Tickets)}
}

type AgentDTO struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toAgentDTO(a *domain.Agent) AgentDTO {
	return AgentDTO{ID: a.ID, DisplayName: a.DisplayName, Email: a.Email, CreatedAt: a.CreatedAt}
}

func toAgentDTOPtr(a *domain.Agent) *AgentDTO {
	if a == nil {
		return nil
	}
	dto := toAgentDTO(a)
	return &dto
}

// AgentDetailsDTO is an agent with the tickets assigned to them.
type AgentDetailsDTO struct {
	AgentDTO
	Tickets []TicketDTO `json:"tickets"`
}

func toAgentDetailsDTO(d domain.AgentDetails) AgentDetailsDTO {
	return AgentDetailsDTO{AgentDTO: toAgentDTO(d.Agent), Tickets: toTicketDTOs(d.Tickets)}
}

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customerId"`
	AssignedAgentID *int64    `json:"assignedAgentId"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toTicketDTO(t *domain.Ticket) TicketDTO {
	return TicketDTO{
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

func toTicketDTOs(tickets []*domain.Ticket) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketDTO(t))
	}
	return out
}

// TicketDetailsDTO is a ticket with its owner, assignee and comment thread.
type TicketDetailsDTO struct {
	TicketDTO
	Customer      *CustomerDTO        `json:"customer"`
	AssignedAgent *AgentDTO           `json:"assignedAgent"`
	Comments      []CommentDetailsDTO `json:"comments"`
}

func toTicketDetailsDTO(d domain.TicketDetails) TicketDetailsDTO {
	comments := make([]CommentDetailsDTO, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, toCommentDetailsDTO(c, false))
	}
	return TicketDetailsDTO{
		TicketDTO:     toTicketDTO(d.Ticket),
		Customer:      toCustomerDTOPtr(d.Customer),
		AssignedAgent: toAgentDTOPtr(d.AssignedAgent),
		Comments:      comments,
	}
}

type CommentDTO struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticketId"`
	AuthorType string    `json:"authorType"`
	AgentID    *int64    `json:"agentId"`
	CustomerID *int64    `json:"customerId"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID,
		TicketID:   c.TicketID,
		AuthorType: string(c.Author.Kind()),
		AgentID:    c.Author.AgentID(),
		CustomerID: c.Author.CustomerID(),
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}
}

// CommentDetailsDTO is a comment with its author resolved. Ticket is only
// filled when the comment is fetched on its own.
type CommentDetailsDTO struct {
	CommentDTO
	Agent    *AgentDTO    `json:"agent,omitempty"`
	Customer *CustomerDTO `json:"customer,omitempty"`
	Ticket   *TicketDTO   `json:"ticket,omitempty"`
}

func toCommentDetailsDTO(d domain.CommentDetails, withTicket bool) CommentDetailsDTO {
	dto := CommentDetailsDTO{
		CommentDTO: toCommentDTO(d.Comment),
		Agent:      toAgentDTOPtr(d.Agent),
		Customer:   toCustomerDTOPtr(d.Customer),
	}
	if withTicket && d.Ticket != nil {
		ticket := toTicketDTO(d.Ticket)
		dto.Ticket = &ticket
	}
	return dto
}
