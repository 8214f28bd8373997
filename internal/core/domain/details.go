package domain

// CommentDetails is a comment with its ticket and author resolved.
// Exactly one of Agent and Customer is set.
type CommentDetails struct {
	Comment  *Comment
	Ticket   *Ticket
	Agent    *Agent
	Customer *Customer
}

// TicketDetails is a ticket with its owner, assignee and thread resolved.
type TicketDetails struct {
	Ticket        *Ticket
	Customer      *Customer
	AssignedAgent *Agent
	Comments      []CommentDetails
}

// CustomerDetails is a customer with the tickets they own.
type CustomerDetails struct {
	Customer *Customer
	Tickets  []*Ticket
}

// AgentDetails is an agent with the tickets assigned to them.
type AgentDetails struct {
	Agent   *Agent
	Tickets []*Ticket
}
