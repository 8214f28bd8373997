package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/supporthub-backend/internal/adapters/primary/validation"
	"github.com/lorrc/supporthub-backend/internal/core/domain"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	comments     ports.CommentService
	validator    *validation.Validator
	errorHandler *ErrorHandler
}

func NewCommentHandler(
	comments ports.CommentService,
	validator *validation.Validator,
	errorHandler *ErrorHandler,
) *CommentHandler {
	return &CommentHandler{
		comments:     comments,
		validator:    validator,
		errorHandler: errorHandler,
	}
}

func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListComments)
	r.Post("/", h.HandleCreateComment)
	r.Get("/{commentID}", h.HandleGetComment)
	r.Put("/{commentID}", h.HandleUpdateComment)
	r.Delete("/{commentID}", h.HandleDeleteComment)
}

// HandleCreateComment handles POST /comments
func (h *CommentHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateCommentRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.comments.Create(r.Context(), ports.CreateCommentParams{
		TicketID:   req.TicketID,
		Body:       req.Body,
		AgentID:    req.AgentID,
		CustomerID: req.CustomerID,
	})
	writeResult(w, r, h.errorHandler, res, err, http.StatusCreated, http.StatusBadRequest, toCommentDTO)
}

// HandleListComments handles GET /comments
func (h *CommentHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	res, err := h.comments.List(r.Context())
	writeListResult(w, r, h.errorHandler, res, err, http.StatusNotFound,
		func(d domain.CommentDetails) CommentDetailsDTO { return toCommentDetailsDTO(d, true) })
}

// HandleGetComment handles GET /comments/{commentID}
func (h *CommentHandler) HandleGetComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := validation.ParseID(r, "commentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.comments.GetByID(r.Context(), commentID)
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusNotFound,
		func(d *domain.CommentDetails) CommentDetailsDTO { return toCommentDetailsDTO(*d, true) })
}

// HandleUpdateComment handles PUT /comments/{commentID}
func (h *CommentHandler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := validation.ParseID(r, "commentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateCommentRequest](r, h.validator)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.comments.Update(r.Context(), commentID, req.Body)
	writeResult(w, r, h.errorHandler, res, err, http.StatusOK, http.StatusBadRequest, toCommentDTO)
}

// HandleDeleteComment handles DELETE /comments/{commentID}
func (h *CommentHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := validation.ParseID(r, "commentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	res, err := h.comments.Delete(r.Context(), commentID)
	writeEmptyResult(w, r, h.errorHandler, res, err, http.StatusNotFound)
}
