package domain

import (
	"strings"
	"time"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

const MaxCommentBodyLength = 5000

// AuthorKind tells which directory an Author points into.
type AuthorKind string

const (
	AuthorAgent    AuthorKind = "AGENT"
	AuthorCustomer AuthorKind = "CUSTOMER"
)

// Author identifies who wrote a comment: exactly one agent or one customer.
// The zero value is not a valid author.
type Author struct {
	kind AuthorKind
	id   int64
}

func AgentAuthor(agentID int64) Author {
	return Author{kind: AuthorAgent, id: agentID}
}

func CustomerAuthor(customerID int64) Author {
	return Author{kind: AuthorCustomer, id: customerID}
}

// NewAuthor builds an Author from a pair of optional ids, exactly one of
// which must be set.
func NewAuthor(agentID, customerID *int64) (Author, error) {
	switch {
	case agentID == nil && customerID == nil:
		return Author{}, apperrors.ErrAuthorRequired
	case agentID != nil && customerID != nil:
		return Author{}, apperrors.ErrAuthorAmbiguous
	case agentID != nil:
		return AgentAuthor(*agentID), nil
	default:
		return CustomerAuthor(*customerID), nil
	}
}

func (a Author) Kind() AuthorKind { return a.kind }
func (a Author) ID() int64        { return a.id }
func (a Author) IsAgent() bool    { return a.kind == AuthorAgent }
func (a Author) IsCustomer() bool { return a.kind == AuthorCustomer }
func (a Author) IsZero() bool     { return a.kind == "" }

// AgentID returns the agent id, or nil for a customer author.
func (a Author) AgentID() *int64 {
	if !a.IsAgent() {
		return nil
	}
	id := a.id
	return &id
}

// CustomerID returns the customer id, or nil for an agent author.
func (a Author) CustomerID() *int64 {
	if !a.IsCustomer() {
		return nil
	}
	id := a.id
	return &id
}

// Comment is a message on a ticket's thread.
type Comment struct {
	ID        int64
	TicketID  int64
	Author    Author
	Body      string
	CreatedAt time.Time
}

// CommentParams holds parameters for writing a comment
type CommentParams struct {
	TicketID int64
	Author   Author
	Body     string
}

// ValidateCommentBody checks a comment body on its own.
func ValidateCommentBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return apperrors.ErrCommentBodyRequired
	}
	if len(body) > MaxCommentBodyLength {
		return apperrors.ErrCommentBodyTooLong
	}
	return nil
}

func NewComment(params CommentParams) (*Comment, error) {
	if err := ValidateCommentBody(params.Body); err != nil {
		return nil, err
	}
	if params.Author.IsZero() {
		return nil, apperrors.ErrAuthorRequired
	}

	return &Comment{
		TicketID:  params.TicketID,
		Author:    params.Author,
		Body:      params.Body,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Edit replaces the body. Author and timestamps never change.
func (c *Comment) Edit(body string) error {
	if err := ValidateCommentBody(body); err != nil {
		return err
	}
	c.Body = body
	return nil
}
