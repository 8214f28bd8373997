package services_test

import (
	"context"
	"testing"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("agent comment stamps ticket activity in the same commit", func(t *testing.T) {
		d := newDeps()
		ticket := testTicket(1, 7, domain.StatusInProgress)
		before := ticket.UpdatedAt
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)
		d.agents.On("GetByID", mock.Anything, int64(3)).Return(testAgent(3), nil)
		d.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.TicketID == 1 && c.Author == domain.AgentAuthor(3) && c.Body == "On it"
		})).Return(&domain.Comment{ID: 10, TicketID: 1, Author: domain.AgentAuthor(3), Body: "On it"}, nil)
		d.tickets.On("Update", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
			return tk.UpdatedAt.After(before)
		})).Return(ticket, nil)

		res, err := d.commentService().Create(ctx, ports.CreateCommentParams{
			TicketID: 1, Body: "On it", AgentID: int64Ptr(3),
		})

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, int64(10), res.Value().ID)
		d.comments.AssertExpectations(t)
		d.tickets.AssertExpectations(t)
		d.tx.AssertNumberOfCalls(t, "WithTransaction", 1)
	})

	t.Run("owning customer may comment", func(t *testing.T) {
		d := newDeps()
		ticket := testTicket(1, 7, domain.StatusWaitingOnCustomer)
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)
		d.customers.On("GetByID", mock.Anything, int64(7)).Return(testCustomer(7), nil)
		d.comments.On("Create", mock.Anything, mock.Anything).
			Return(&domain.Comment{ID: 11, TicketID: 1, Author: domain.CustomerAuthor(7), Body: "Still broken"}, nil)
		d.tickets.On("Update", mock.Anything, ticket).Return(ticket, nil)

		res, err := d.commentService().Create(ctx, ports.CreateCommentParams{
			TicketID: 1, Body: "Still broken", CustomerID: int64Ptr(7),
		})

		require.NoError(t, err)
		assert.True(t, res.IsSuccess())
	})

	failures := []struct {
		name     string
		params   ports.CreateCommentParams
		setup    func(d *deps)
		wantErr  error
		wantKind apperrors.Kind
	}{
		{
			name:     "blank body",
			params:   ports.CreateCommentParams{TicketID: 1, Body: " ", AgentID: int64Ptr(3)},
			setup:    func(d *deps) {},
			wantErr:  apperrors.ErrCommentBodyRequired,
			wantKind: apperrors.KindValidation,
		},
		{
			name:     "no author",
			params:   ports.CreateCommentParams{TicketID: 1, Body: "hi"},
			setup:    func(d *deps) {},
			wantErr:  apperrors.ErrAuthorRequired,
			wantKind: apperrors.KindValidation,
		},
		{
			name:     "two authors",
			params:   ports.CreateCommentParams{TicketID: 1, Body: "hi", AgentID: int64Ptr(3), CustomerID: int64Ptr(7)},
			setup:    func(d *deps) {},
			wantErr:  apperrors.ErrAuthorAmbiguous,
			wantKind: apperrors.KindValidation,
		},
		{
			name:   "ticket missing",
			params: ports.CreateCommentParams{TicketID: 1, Body: "hi", AgentID: int64Ptr(3)},
			setup: func(d *deps) {
				d.tickets.On("GetByID", mock.Anything, int64(1)).Return(nil, apperrors.ErrTicketNotFound)
			},
			wantErr:  apperrors.ErrTicketNotFound,
			wantKind: apperrors.KindNotFound,
		},
		{
			name:   "ticket closed",
			params: ports.CreateCommentParams{TicketID: 1, Body: "hi", AgentID: int64Ptr(3)},
			setup: func(d *deps) {
				d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusClosed), nil)
			},
			wantErr:  apperrors.ErrCannotCommentClosed,
			wantKind: apperrors.KindInvalidState,
		},
		{
			name:   "closed wins over foreign customer",
			params: ports.CreateCommentParams{TicketID: 1, Body: "hi", CustomerID: int64Ptr(8)},
			setup: func(d *deps) {
				d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusClosed), nil)
			},
			wantErr:  apperrors.ErrCannotCommentClosed,
			wantKind: apperrors.KindInvalidState,
		},
		{
			name:   "customer does not own ticket",
			params: ports.CreateCommentParams{TicketID: 1, Body: "hi", CustomerID: int64Ptr(8)},
			setup: func(d *deps) {
				d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusOpen), nil)
			},
			wantErr:  apperrors.ErrCustomerNotTicketOwner,
			wantKind: apperrors.KindAuthorization,
		},
		{
			name:   "agent does not exist",
			params: ports.CreateCommentParams{TicketID: 1, Body: "hi", AgentID: int64Ptr(3)},
			setup: func(d *deps) {
				d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusOpen), nil)
				d.agents.On("GetByID", mock.Anything, int64(3)).Return(nil, apperrors.ErrAgentNotFound)
			},
			wantErr:  apperrors.ErrAgentNotFound,
			wantKind: apperrors.KindNotFound,
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.setup(d)

			res, err := d.commentService().Create(ctx, tt.params)

			require.NoError(t, err)
			assert.False(t, res.IsSuccess())
			assert.Equal(t, tt.wantKind, res.Kind())
			assert.ErrorIs(t, res.Failure(), tt.wantErr)
			d.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			d.tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestCommentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves ticket and customer author", func(t *testing.T) {
		d := newDeps()
		ticket := testTicket(1, 7, domain.StatusOpen)
		d.comments.On("GetByID", mock.Anything, int64(10)).
			Return(&domain.Comment{ID: 10, TicketID: 1, Author: domain.CustomerAuthor(7), Body: "hello"}, nil)
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil)
		d.customers.On("GetByID", mock.Anything, int64(7)).Return(testCustomer(7), nil)

		res, err := d.commentService().GetByID(ctx, 10)

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Same(t, ticket, res.Value().Ticket)
		assert.Equal(t, int64(7), res.Value().Customer.ID)
		assert.Nil(t, res.Value().Agent)
	})

	t.Run("not found", func(t *testing.T) {
		d := newDeps()
		d.comments.On("GetByID", mock.Anything, int64(10)).Return(nil, apperrors.ErrCommentNotFound)

		res, err := d.commentService().GetByID(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, apperrors.KindNotFound, res.Kind())
	})
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("edits body only", func(t *testing.T) {
		d := newDeps()
		comment := &domain.Comment{ID: 10, TicketID: 1, Author: domain.AgentAuthor(3), Body: "old"}
		createdAt := comment.CreatedAt
		d.comments.On("GetByID", mock.Anything, int64(10)).Return(comment, nil)
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusResolved), nil)
		d.comments.On("Update", mock.Anything, comment).Return(comment, nil)

		res, err := d.commentService().Update(ctx, 10, "new")

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, "new", res.Value().Body)
		assert.Equal(t, domain.AgentAuthor(3), res.Value().Author)
		assert.Equal(t, createdAt, res.Value().CreatedAt)
		d.tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		d := newDeps()
		d.comments.On("GetByID", mock.Anything, int64(10)).Return(nil, apperrors.ErrCommentNotFound)

		res, err := d.commentService().Update(ctx, 10, "new")

		require.NoError(t, err)
		assert.Equal(t, apperrors.KindNotFound, res.Kind())
	})

	t.Run("blank body", func(t *testing.T) {
		d := newDeps()
		d.comments.On("GetByID", mock.Anything, int64(10)).
			Return(&domain.Comment{ID: 10, TicketID: 1, Author: domain.AgentAuthor(3), Body: "old"}, nil)

		res, err := d.commentService().Update(ctx, 10, "")

		require.NoError(t, err)
		assert.Equal(t, apperrors.KindValidation, res.Kind())
	})

	t.Run("closed ticket", func(t *testing.T) {
		d := newDeps()
		d.comments.On("GetByID", mock.Anything, int64(10)).
			Return(&domain.Comment{ID: 10, TicketID: 1, Author: domain.AgentAuthor(3), Body: "old"}, nil)
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusClosed), nil)

		res, err := d.commentService().Update(ctx, 10, "new")

		require.NoError(t, err)
		assert.ErrorIs(t, res.Failure(), apperrors.ErrCannotEditClosed)
		d.comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed on a closed ticket", func(t *testing.T) {
		d := newDeps()
		d.comments.On("GetByID", mock.Anything, int64(10)).
			Return(&domain.Comment{ID: 10, TicketID: 1, Author: domain.AgentAuthor(3), Body: "x"}, nil)
		d.comments.On("Delete", mock.Anything, int64(10)).Return(nil)

		res, err := d.commentService().Delete(ctx, 10)

		require.NoError(t, err)
		assert.True(t, res.IsSuccess())
		d.tickets.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		d := newDeps()
		d.comments.On("GetByID", mock.Anything, int64(10)).Return(nil, apperrors.ErrCommentNotFound)

		res, err := d.commentService().Delete(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, apperrors.KindNotFound, res.Kind())
	})
}

func TestCommentService_ListForTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown ticket", func(t *testing.T) {
		d := newDeps()
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(nil, apperrors.ErrTicketNotFound)

		res, err := d.commentService().ListForTicket(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, apperrors.KindNotFound, res.Kind())
	})

	t.Run("thread with authors", func(t *testing.T) {
		d := newDeps()
		d.tickets.On("GetByID", mock.Anything, int64(1)).Return(testTicket(1, 7, domain.StatusOpen), nil)
		d.comments.On("ListByTicket", mock.Anything, int64(1)).Return([]*domain.Comment{
			{ID: 10, TicketID: 1, Author: domain.AgentAuthor(3), Body: "a"},
			{ID: 11, TicketID: 1, Author: domain.AgentAuthor(3), Body: "b"},
		}, nil)
		d.agents.On("GetByID", mock.Anything, int64(3)).Return(testAgent(3), nil).Once()

		res, err := d.commentService().ListForTicket(ctx, 1)

		require.NoError(t, err)
		require.Len(t, res.Value(), 2)
		assert.Equal(t, "Grace", res.Value()[1].Agent.DisplayName)
		d.agents.AssertExpectations(t)
	})
}

func TestCommentService_List(t *testing.T) {
	d := newDeps()
	ticket := testTicket(1, 7, domain.StatusOpen)
	d.comments.On("List", mock.Anything).Return([]*domain.Comment{
		{ID: 10, TicketID: 1, Author: domain.CustomerAuthor(7), Body: "hello"},
		{ID: 11, TicketID: 1, Author: domain.AgentAuthor(3), Body: "hi"},
	}, nil)
	d.tickets.On("GetByID", mock.Anything, int64(1)).Return(ticket, nil).Once()
	d.customers.On("GetByID", mock.Anything, int64(7)).Return(testCustomer(7), nil)
	d.agents.On("GetByID", mock.Anything, int64(3)).Return(testAgent(3), nil)

	res, err := d.commentService().List(context.Background())

	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	list := res.Value()
	require.Len(t, list, 2)
	assert.Same(t, ticket, list[0].Ticket)
	assert.Same(t, ticket, list[1].Ticket)
	assert.Equal(t, int64(7), list[0].Customer.ID)
	assert.Equal(t, "Grace", list[1].Agent.DisplayName)
	d.tickets.AssertExpectations(t)
}
