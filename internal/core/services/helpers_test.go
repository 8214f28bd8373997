package services_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	"github.com/lorrc/supporthub-backend/internal/core/mocks"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
	"github.com/lorrc/supporthub-backend/internal/core/services"
	"github.com/stretchr/testify/mock"
)

type deps struct {
	customers *mocks.MockCustomerRepository
	agents    *mocks.MockAgentRepository
	tickets   *mocks.MockTicketRepository
	comments  *mocks.MockCommentRepository
	tx        *mocks.MockTransactionManager
	logger    *slog.Logger
}

func newDeps() *deps {
	d := &deps{
		customers: mocks.NewMockCustomerRepository(),
		agents:    mocks.NewMockAgentRepository(),
		tickets:   mocks.NewMockTicketRepository(),
		comments:  mocks.NewMockCommentRepository(),
		tx:        mocks.NewMockTransactionManager(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	d.tx.On("WithTransaction", mock.Anything).Return(nil).Maybe()
	return d
}

func (d *deps) ticketService() ports.TicketService {
	return services.NewTicketService(d.tickets, d.customers, d.agents, d.comments, d.tx, d.logger)
}

func (d *deps) commentService() ports.CommentService {
	return services.NewCommentService(d.comments, d.tickets, d.customers, d.agents, d.tx, d.logger)
}

func (d *deps) customerService() ports.CustomerService {
	return services.NewCustomerService(d.customers, d.agents, d.tickets, d.comments, d.tx, d.logger)
}

func (d *deps) agentService() ports.AgentService {
	return services.NewAgentService(d.agents, d.tickets, d.comments, d.tx, d.logger)
}

func int64Ptr(v int64) *int64 { return &v }

func testTicket(id, customerID int64, status domain.TicketStatus) *domain.Ticket {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Ticket{
		ID:          id,
		CustomerID:  customerID,
		Category:    domain.CategoryBilling,
		Status:      status,
		Priority:    domain.PriorityMedium,
		Title:       "Double charge",
		Description: "I was billed twice in April",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func testCustomer(id int64) *domain.Customer {
	return &domain.Customer{ID: id, Name: "Ada", Email: "ada@example.com"}
}

func testAgent(id int64) *domain.Agent {
	return &domain.Agent{ID: id, DisplayName: "Grace", Email: "grace@support.io"}
}
