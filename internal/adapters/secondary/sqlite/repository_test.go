package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

type testRepos struct {
	store     *Store
	customers *CustomerRepository
	agents    *AgentRepository
	tickets   *TicketRepository
	comments  *CommentRepository
	tx        *TransactionManager
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	store, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := store.DB()
	return testRepos{
		store:     store,
		customers: NewCustomerRepository(db),
		agents:    NewAgentRepository(db),
		tickets:   NewTicketRepository(db),
		comments:  NewCommentRepository(db),
		tx:        NewTransactionManager(db),
	}
}

func createTestCustomer(t *testing.T, ctx context.Context, repos testRepos, email string) *domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer(domain.CustomerParams{Name: "Ticket Requester", Email: email})
	require.NoError(t, err)
	created, err := repos.customers.Create(ctx, customer)
	require.NoError(t, err)
	return created
}

func createTestAgent(t *testing.T, ctx context.Context, repos testRepos, email string) *domain.Agent {
	t.Helper()
	agent, err := domain.NewAgent(domain.AgentParams{DisplayName: "Support Agent", Email: email})
	require.NoError(t, err)
	created, err := repos.agents.Create(ctx, agent)
	require.NoError(t, err)
	return created
}

func createTestTicket(t *testing.T, ctx context.Context, repos testRepos, customerID int64) *domain.Ticket {
	t.Helper()
	ticket, err := domain.NewTicket(domain.TicketParams{
		CustomerID:  customerID,
		Title:       "Printer offline",
		Description: "The office printer stopped responding",
		Category:    domain.CategoryAccess,
	})
	require.NoError(t, err)
	created, err := repos.tickets.Create(ctx, ticket)
	require.NoError(t, err)
	return created
}

func createTestComment(t *testing.T, ctx context.Context, repos testRepos, ticketID int64, author domain.Author) *domain.Comment {
	t.Helper()
	comment, err := domain.NewComment(domain.CommentParams{TicketID: ticketID, Author: author, Body: "Looking into it"})
	require.NoError(t, err)
	created, err := repos.comments.Create(ctx, comment)
	require.NoError(t, err)
	return created
}

func TestOpen_CreatesDirectoryForFileDatabase(t *testing.T) {
	path := t.TempDir() + "/nested/supporthub.db"

	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
}

func TestCustomerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created := createTestCustomer(t, ctx, repos, "dana@example.com")
	assert.NotZero(t, created.ID)

	found, err := repos.customers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", found.Email)
	assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Millisecond)

	taken, err := repos.customers.EmailTaken(ctx, "dana@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.customers.EmailTaken(ctx, "dana@example.com", created.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	found.Name = "Dana Scully"
	updated, err := repos.customers.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Dana Scully", updated.Name)

	require.NoError(t, repos.customers.Delete(ctx, created.ID))
	_, err = repos.customers.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	assert.ErrorIs(t, repos.customers.Delete(ctx, created.ID), apperrors.ErrCustomerNotFound)
}

func TestCustomerRepository_UniqueEmailMapsToConflict(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	createTestCustomer(t, ctx, repos, "dup@example.com")
	duplicate, err := domain.NewCustomer(domain.CustomerParams{Name: "Copy", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = repos.customers.Create(ctx, duplicate)
	assert.ErrorIs(t, err, apperrors.ErrCustomerEmailTaken)
}

func TestAgentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	created := createTestAgent(t, ctx, repos, "agent@example.com")

	found, err := repos.agents.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Support Agent", found.DisplayName)

	found.DisplayName = "Tier 2"
	updated, err := repos.agents.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Tier 2", updated.DisplayName)

	other := createTestAgent(t, ctx, repos, "other@example.com")
	other.Email = "agent@example.com"
	_, err = repos.agents.Update(ctx, other)
	assert.ErrorIs(t, err, apperrors.ErrAgentEmailTaken)

	require.NoError(t, repos.agents.Delete(ctx, created.ID))
	assert.ErrorIs(t, repos.agents.Delete(ctx, created.ID), apperrors.ErrAgentNotFound)
}

func TestTicketRepository_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	agent := createTestAgent(t, ctx, repos, "agent@example.com")
	created := createTestTicket(t, ctx, repos, customer.ID)

	found, err := repos.tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.CustomerID)
	assert.Equal(t, domain.StatusOpen, found.Status)
	assert.Equal(t, domain.PriorityMedium, found.Priority)
	assert.Equal(t, domain.CategoryAccess, found.Category)
	assert.Nil(t, found.AssignedAgentID)

	require.NoError(t, found.Assign(agent.ID))
	require.NoError(t, found.ChangeStatus(domain.StatusInProgress))
	updated, err := repos.tickets.Update(ctx, found)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedAgentID)
	assert.Equal(t, agent.ID, *updated.AssignedAgentID)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = repos.tickets.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepository_ListAndExistsForCustomer(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	other := createTestCustomer(t, ctx, repos, "other@example.com")

	exists, err := repos.tickets.ExistsForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	first := createTestTicket(t, ctx, repos, customer.ID)
	second := createTestTicket(t, ctx, repos, customer.ID)
	createTestTicket(t, ctx, repos, other.ID)

	tickets, err := repos.tickets.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, first.ID, tickets[0].ID)
	assert.Equal(t, second.ID, tickets[1].ID)

	exists, err = repos.tickets.ExistsForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepositories_ListAll(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	createTestCustomer(t, ctx, repos, "other@example.com")
	agent := createTestAgent(t, ctx, repos, "agent@example.com")
	first := createTestTicket(t, ctx, repos, customer.ID)
	second := createTestTicket(t, ctx, repos, customer.ID)
	require.NoError(t, second.Assign(agent.ID))
	_, err := repos.tickets.Update(ctx, second)
	require.NoError(t, err)
	createTestComment(t, ctx, repos, first.ID, domain.CustomerAuthor(customer.ID))
	createTestComment(t, ctx, repos, second.ID, domain.AgentAuthor(agent.ID))

	customers, err := repos.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, customer.ID, customers[0].ID)

	agents, err := repos.agents.List(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)

	tickets, err := repos.tickets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, first.ID, tickets[0].ID)

	assigned, err := repos.tickets.ListByAgent(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, second.ID, assigned[0].ID)

	comments, err := repos.comments.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].TicketID)
	assert.True(t, comments[1].Author.IsAgent())
}

func TestTicketRepository_UnassignAgent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	agent := createTestAgent(t, ctx, repos, "agent@example.com")
	ticket := createTestTicket(t, ctx, repos, customer.ID)
	require.NoError(t, ticket.Assign(agent.ID))
	_, err := repos.tickets.Update(ctx, ticket)
	require.NoError(t, err)

	n, err := repos.tickets.UnassignAgent(ctx, agent.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	found, err := repos.tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, found.AssignedAgentID)
}

func TestTicketRepository_DeleteRemovesComments(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	ticket := createTestTicket(t, ctx, repos, customer.ID)
	comment := createTestComment(t, ctx, repos, ticket.ID, domain.CustomerAuthor(customer.ID))

	require.NoError(t, repos.tickets.Delete(ctx, ticket.ID))

	_, err := repos.comments.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
	assert.ErrorIs(t, repos.tickets.Delete(ctx, ticket.ID), apperrors.ErrTicketNotFound)
}

func TestTicketRepository_CustomerDeleteRestrictedByTickets(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	createTestTicket(t, ctx, repos, customer.ID)

	err := repos.customers.Delete(ctx, customer.ID)
	require.Error(t, err)
	_, isAppErr := apperrors.As(err)
	assert.False(t, isAppErr, "foreign key violations surface as store faults")
}

func TestCommentRepository_CRUDAndAuthor(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	customer := createTestCustomer(t, ctx, repos, "owner@example.com")
	agent := createTestAgent(t, ctx, repos, "agent@example.com")
	ticket := createTestTicket(t, ctx, repos, customer.ID)

	byCustomer := createTestComment(t, ctx, repos, ticket.ID, domain.CustomerAuthor(customer.ID))
	byAgent := createTestComment(t, ctx, repos, ticket.ID, domain.AgentAuthor(agent.ID))

	found, err := repos.comments.GetByID(ctx, byAgent.ID)
	require.NoError(t, err)
	assert.True(t, found.Author.IsAgent())
	assert.Equal(t, agent.ID, found.Author.ID())

	require.NoError(t, found.Edit("Fixed by restarting the spooler"))
	updated, err := repos.comments.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Fixed by restarting the spooler", updated.Body)

	list, err := repos.comments.ListByTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, byCustomer.ID, list[0].ID)
	assert.True(t, list[0].Author.IsCustomer())

	exists, err := repos.comments.ExistsByAuthor(ctx, domain.AgentAuthor(agent.ID))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repos.comments.Delete(ctx, byAgent.ID))
	exists, err = repos.comments.ExistsByAuthor(ctx, domain.AgentAuthor(agent.ID))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repos.comments.Delete(ctx, byAgent.ID), apperrors.ErrCommentNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	boom := errors.New("boom")

	err := repos.tx.WithTransaction(ctx, func(ctx context.Context) error {
		createTestCustomer(t, ctx, repos, "rollback@example.com")
		return boom
	})
	require.ErrorIs(t, err, boom)

	taken, err := repos.customers.EmailTaken(ctx, "rollback@example.com", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestTransactionManager_NestedCallJoinsOuter(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	err := repos.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return repos.tx.WithTransaction(ctx, func(ctx context.Context) error {
			createTestCustomer(t, ctx, repos, "nested@example.com")
			return nil
		})
	})
	require.NoError(t, err)

	taken, err := repos.customers.EmailTaken(ctx, "nested@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}
