package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

type testRepos struct {
	customers ports.CustomerRepository
	agents    ports.AgentRepository
	tickets   ports.TicketRepository
	comments  ports.CommentRepository
	tx        *TransactionManager
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	require.NotNil(t, testPool, "test pool is not initialised")
	return testRepos{
		customers: NewCustomerRepository(testPool),
		agents:    NewAgentRepository(testPool),
		tickets:   NewTicketRepository(testPool),
		comments:  NewCommentRepository(testPool),
		tx:        NewTransactionManager(testPool),
	}
}

// uniqueEmail keeps tests independent on the shared database.
func uniqueEmail() string {
	return uuid.NewString() + "@example.com"
}

func createTestCustomer(t *testing.T, ctx context.Context, repos testRepos) *domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer(domain.CustomerParams{Name: "Ticket Requester", Email: uniqueEmail()})
	require.NoError(t, err)
	created, err := repos.customers.Create(ctx, customer)
	require.NoError(t, err)
	return created
}

func createTestAgent(t *testing.T, ctx context.Context, repos testRepos) *domain.Agent {
	t.Helper()
	agent, err := domain.NewAgent(domain.AgentParams{DisplayName: "Support Agent", Email: uniqueEmail()})
	require.NoError(t, err)
	created, err := repos.agents.Create(ctx, agent)
	require.NoError(t, err)
	return created
}

func createTestTicket(t *testing.T, ctx context.Context, repos testRepos, customerID int64) *domain.Ticket {
	t.Helper()
	ticket, err := domain.NewTicket(domain.TicketParams{
		CustomerID:  customerID,
		Title:       "Test Ticket",
		Description: "This is a description",
		Category:    domain.CategoryBug,
	})
	require.NoError(t, err)
	created, err := repos.tickets.Create(ctx, ticket)
	require.NoError(t, err)
	return created
}

func TestCustomerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created := createTestCustomer(t, ctx, repos)
	assert.NotZero(t, created.ID)

	found, err := repos.customers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)

	taken, err := repos.customers.EmailTaken(ctx, created.Email, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.customers.EmailTaken(ctx, created.Email, created.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own email must not count as taken")

	found.Name = "Renamed"
	updated, err := repos.customers.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, repos.customers.Delete(ctx, created.ID))
	_, err = repos.customers.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestCustomerRepository_UniqueEmailMapsToConflict(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	existing := createTestCustomer(t, ctx, repos)
	duplicate, err := domain.NewCustomer(domain.CustomerParams{Name: "Copy", Email: existing.Email})
	require.NoError(t, err)

	_, err = repos.customers.Create(ctx, duplicate)
	assert.ErrorIs(t, err, apperrors.ErrCustomerEmailTaken)
}

func TestAgentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created := createTestAgent(t, ctx, repos)

	found, err := repos.agents.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Support Agent", found.DisplayName)

	require.NoError(t, repos.agents.Delete(ctx, created.ID))
	assert.ErrorIs(t, repos.agents.Delete(ctx, created.ID), apperrors.ErrAgentNotFound)
}

func TestTicketRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos)
	agent := createTestAgent(t, ctx, repos)
	created := createTestTicket(t, ctx, repos, customer.ID)

	found, err := repos.tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Ticket", found.Title)
	assert.Equal(t, customer.ID, found.CustomerID)
	assert.Equal(t, domain.StatusOpen, found.Status)
	assert.Equal(t, domain.PriorityMedium, found.Priority)
	assert.Equal(t, domain.CategoryBug, found.Category)
	assert.Nil(t, found.AssignedAgentID)

	require.NoError(t, found.Assign(agent.ID))
	require.NoError(t, found.ChangeStatus(domain.StatusInProgress))
	updated, err := repos.tickets.Update(ctx, found)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedAgentID)
	assert.Equal(t, agent.ID, *updated.AssignedAgentID)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.WithinDuration(t, found.UpdatedAt, updated.UpdatedAt, time.Microsecond)

	_, err = repos.tickets.GetByID(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepository_ListByCustomer(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer1 := createTestCustomer(t, ctx, repos)
	customer2 := createTestCustomer(t, ctx, repos)

	first := createTestTicket(t, ctx, repos, customer1.ID)
	second := createTestTicket(t, ctx, repos, customer1.ID)
	createTestTicket(t, ctx, repos, customer2.ID)

	tickets, err := repos.tickets.ListByCustomer(ctx, customer1.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, first.ID, tickets[0].ID)
	assert.Equal(t, second.ID, tickets[1].ID)

	exists, err := repos.tickets.ExistsForCustomer(ctx, customer2.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	empty := createTestCustomer(t, ctx, repos)
	tickets, err = repos.tickets.ListByCustomer(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
}

func TestRepositories_ListAll(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos)
	agent := createTestAgent(t, ctx, repos)
	ticket := createTestTicket(t, ctx, repos, customer.ID)
	require.NoError(t, ticket.Assign(agent.ID))
	_, err := repos.tickets.Update(ctx, ticket)
	require.NoError(t, err)

	comment, err := domain.NewComment(domain.CommentParams{TicketID: ticket.ID, Author: domain.AgentAuthor(agent.ID), Body: "On it"})
	require.NoError(t, err)
	created, err := repos.comments.Create(ctx, comment)
	require.NoError(t, err)

	assigned, err := repos.tickets.ListByAgent(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, ticket.ID, assigned[0].ID)

	customers, err := repos.customers.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(customers, func(c *domain.Customer) int64 { return c.ID }), customer.ID)

	agents, err := repos.agents.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(agents, func(a *domain.Agent) int64 { return a.ID }), agent.ID)

	tickets, err := repos.tickets.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(tickets, func(tk *domain.Ticket) int64 { return tk.ID }), ticket.ID)

	comments, err := repos.comments.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(comments, func(c *domain.Comment) int64 { return c.ID }), created.ID)
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func TestTicketRepository_UnassignAgent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos)
	agent := createTestAgent(t, ctx, repos)
	ticket := createTestTicket(t, ctx, repos, customer.ID)
	require.NoError(t, ticket.Assign(agent.ID))
	_, err := repos.tickets.Update(ctx, ticket)
	require.NoError(t, err)

	n, err := repos.tickets.UnassignAgent(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err := repos.tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, found.AssignedAgentID)
}

func TestCommentRepository_AuthorsAndCascade(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos)
	agent := createTestAgent(t, ctx, repos)
	ticket := createTestTicket(t, ctx, repos, customer.ID)

	fromCustomer, err := domain.NewComment(domain.CommentParams{TicketID: ticket.ID, Author: domain.CustomerAuthor(customer.ID), Body: "help"})
	require.NoError(t, err)
	fromAgent, err := domain.NewComment(domain.CommentParams{TicketID: ticket.ID, Author: domain.AgentAuthor(agent.ID), Body: "on it"})
	require.NoError(t, err)

	c1, err := repos.comments.Create(ctx, fromCustomer)
	require.NoError(t, err)
	c2, err := repos.comments.Create(ctx, fromAgent)
	require.NoError(t, err)

	assert.Equal(t, domain.CustomerAuthor(customer.ID), c1.Author)
	assert.Equal(t, domain.AgentAuthor(agent.ID), c2.Author)

	thread, err := repos.comments.ListByTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, c1.ID, thread[0].ID)

	exists, err := repos.comments.ExistsByAuthor(ctx, domain.AgentAuthor(agent.ID))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c2.Edit("fixed"))
	edited, err := repos.comments.Update(ctx, c2)
	require.NoError(t, err)
	assert.Equal(t, "fixed", edited.Body)

	require.NoError(t, repos.tickets.Delete(ctx, ticket.ID))
	_, err = repos.comments.GetByID(ctx, c1.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound, "comments are deleted with their ticket")
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	email := uniqueEmail()
	boom := errors.New("boom")

	err := repos.tx.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := domain.NewCustomer(domain.CustomerParams{Name: "Rolled Back", Email: email})
		require.NoError(t, err)
		if _, err := repos.customers.Create(ctx, customer); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	taken, err := repos.customers.EmailTaken(ctx, email, 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	email := uniqueEmail()

	err := repos.tx.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := domain.NewCustomer(domain.CustomerParams{Name: "Committed", Email: email})
		if err != nil {
			return err
		}
		_, err = repos.customers.Create(ctx, customer)
		return err
	})
	require.NoError(t, err)

	taken, err := repos.customers.EmailTaken(ctx, email, 0)
	require.NoError(t, err)
	assert.True(t, taken)
}
