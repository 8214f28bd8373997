package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/supporthub-backend/internal/adapters/primary/validation"
	"github.com/lorrc/supporthub-backend/internal/core/domain"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// CustomerHandler serves the customer directory and a customer's tickets.
type CustomerHandler struct {
	customers    ports.CustomerService
	validator    *validation.Validator
	errorHandler *ErrorHandler
}

func NewCustomerHandler(customers ports.CustomerService, validator *validation.Validator, errorHandler *ErrorHandler) *CustomerHandler {
	return &CustomerHandler{customers: customers, validator: validator, errorHandler: errorHandler}
}

func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Route("/{customerID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Put("/", h.HandleUpdate)
		r.Delete("/", h.HandleDelete)
		r.Get("/tickets", h.HandleListTickets)
	})
}

func (h *CustomerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CustomerRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.customers.Create(r.Context(), req.params())
	writeResult(w, r, h.errorHandler, res, err, http.StatusCreated, http.StatusBadRequest, toCustomerDTO)
}

func (h *CustomerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "customerID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.customers.GetByID(r.Context(), id)
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusNotFound,
		func(d *domain.CustomerDetails) CustomerDetailsDTO { return toCustomerDetailsDTO(*d) })
}

// HandleList handles GET /customers
func (h *CustomerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	res, err := h.customers.List(r.Context())
	writeListResult(w, r, h.errorHandler, res, err, http.StatusNotFound, toCustomerDetailsDTO)
}

func (h *CustomerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "customerID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CustomerRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.customers.Update(r.Context(), id, req.params())
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toCustomerDTO)
}

func (h *CustomerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "customerID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.customers.Delete(r.Context(), id)
	writeEmptyResult(w, r, h.errorHandler, res, err, http.StatusNotFound)
}

// HandleListTickets handles GET /customers/{customerID}/tickets
func (h *CustomerHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "customerID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.customers.GetTicketsForCustomer(r.Context(), id)
	writeListResult(w, r, h.errorHandler, res, err, http.StatusNotFound, toTicketDetailsDTO)
}

// AgentHandler serves the agent directory.
type AgentHandler struct {
	agents       ports.AgentService
	validator    *validation.Validator
	errorHandler *ErrorHandler
}

func NewAgentHandler(agents ports.AgentService, validator *validation.Validator, errorHandler *ErrorHandler) *AgentHandler {
	return &AgentHandler{agents: agents, validator: validator, errorHandler: errorHandler}
}

func (h *AgentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{agentID}", h.HandleGet)
	r.Put("/{agentID}", h.HandleUpdate)
	r.Delete("/{agentID}", h.HandleDelete)
}

func (h *AgentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[AgentRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.agents.Create(r.Context(), req.params())
	writeResult(w, r, h.errorHandler, res, err, http.StatusCreated, http.StatusBadRequest, toAgentDTO)
}

func (h *AgentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "agentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.agents.GetByID(r.Context(), id)
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusNotFound,
		func(d *domain.AgentDetails) AgentDetailsDTO { return toAgentDetailsDTO(*d) })
}

func (h *AgentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	res, err := h.agents.List(r.Context())
	writeListResult(w, r, h.errorHandler, res, err, http.StatusNotFound, toAgentDetailsDTO)
}

func (h *AgentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "agentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AgentRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.agents.Update(r.Context(), id, req.params())
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toAgentDTO)
}

func (h *AgentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(r, "agentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.agents.Delete(r.Context(), id)
	writeEmptyResult(w, r, h.errorHandler, res, err, http.StatusNotFound)
}

