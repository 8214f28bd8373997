package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/supporthub-backend/internal/adapters/primary/validation"
	"github.com/lorrc/supporthub-backend/internal/core/domain"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// TicketHandler handles HTTP requests for tickets
type TicketHandler struct {
	tickets      ports.TicketService
	comments     ports.CommentService
	validator    *validation.Validator
	errorHandler *ErrorHandler
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	tickets ports.TicketService,
	comments ports.CommentService,
	validator *validation.Validator,
	errorHandler *ErrorHandler,
) *TicketHandler {
	return &TicketHandler{
		tickets:      tickets,
		comments:     comments,
		validator:    validator,
		errorHandler: errorHandler,
	}
}

// RegisterRoutes sets up the routing for all ticket endpoints.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListTickets)
	r.Post("/", h.HandleCreateTicket)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.Put("/", h.HandleUpdateTicket)
		r.Delete("/", h.HandleDeleteTicket)
		r.Post("/assign/{agentID}", h.HandleAssignAgent)
		r.Patch("/status", h.HandleUpdateStatus)
		r.Patch("/category", h.HandleUpdateCategory)
		r.Patch("/priority", h.HandleUpdatePriority)
		r.Get("/comments", h.HandleListComments)
	})
}

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateTicketRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.Create(r.Context(), ports.CreateTicketParams{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.TicketCategory(req.Category),
	})
	writeResult(w, r, h.errorHandler, res, err, http.StatusCreated, http.StatusBadRequest, toTicketDTO)
}

// HandleListTickets handles GET /tickets
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	res, err := h.tickets.List(r.Context())
	writeListResult(w, r, h.errorHandler, res, err, http.StatusNotFound, toTicketDetailsDTO)
}

// HandleGetTicket handles GET /tickets/{ticketID}
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.GetByID(r.Context(), ticketID)
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusNotFound,
		func(d *domain.TicketDetails) TicketDetailsDTO { return toTicketDetailsDTO(*d) })
}

// HandleUpdateTicket handles PUT /tickets/{ticketID}
func (h *TicketHandler) HandleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateTicketRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.UpdateFields(r.Context(), ports.UpdateTicketParams{
		TicketID:    ticketID,
		Title:       req.Title,
		Description: req.Description,
	})
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toTicketDTO)
}

// HandleDeleteTicket handles DELETE /tickets/{ticketID}
func (h *TicketHandler) HandleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.Delete(r.Context(), ticketID)
	writeEmptyResult(w, r, h.errorHandler, res, err, http.StatusNotFound)
}

// HandleAssignAgent handles POST /tickets/{ticketID}/assign/{agentID}
func (h *TicketHandler) HandleAssignAgent(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	agentID, err := validation.ParseID(r, "agentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.AssignAgent(r.Context(), ports.AssignTicketParams{TicketID: ticketID, AgentID: agentID})
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toTicketDTO)
}

// HandleUpdateStatus handles PATCH /tickets/{ticketID}/status
func (h *TicketHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateStatusRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.UpdateStatus(r.Context(), ticketID, domain.TicketStatus(req.Status))
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toTicketDTO)
}

// HandleUpdateCategory handles PATCH /tickets/{ticketID}/category
func (h *TicketHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateCategoryRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.UpdateCategory(r.Context(), ticketID, domain.TicketCategory(req.Category))
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toTicketDTO)
}

// HandleUpdatePriority handles PATCH /tickets/{ticketID}/priority
func (h *TicketHandler) HandleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdatePriorityRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.tickets.UpdatePriority(r.Context(), ticketID, domain.TicketPriority(req.Priority))
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toTicketDTO)
}

// HandleListComments handles GET /tickets/{ticketID}/comments
func (h *TicketHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	ticketID, err := validation.ParseID(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.comments.ListForTicket(r.Context(), ticketID)
	writeListResult(w, r, h.errorHandler, res, err, http.StatusNotFound,
		func(d domain.CommentDetails) CommentDetailsDTO { return toCommentDetailsDTO(d, false) })
}
