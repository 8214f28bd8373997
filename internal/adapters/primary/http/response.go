package http

import (
	"net/http"

	"github.com/lorrc/supporthub-backend/internal/core/result"
)

// ListResponse wraps a list of items (non-paginated)
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

// WriteNoContent writes a no content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteList writes a simple list response
func WriteList[T any](w http.ResponseWriter, data []T) {
	if data == nil {
		data = []T{}
	}
	WriteJSON(w, http.StatusOK, ListResponse[T]{Data: data, Count: len(data)})
}

// writeResult renders a service outcome: infrastructure errors as 500,
// failures with failStatus and values through render with okStatus.
func writeResult[T, D any](
	w http.ResponseWriter,
	r *http.Request,
	eh *ErrorHandler,
	res result.Result[T],
	err error,
	okStatus, failStatus int,
	render func(T) D,
) {
	if err != nil {
		eh.Handle(w, r, err)
		return
	}
	if !res.IsSuccess() {
		eh.Failure(w, r, failStatus, res.Failure())
		return
	}
	WriteJSON(w, okStatus, render(res.Value()))
}

// writeListResult is writeResult for list endpoints.
func writeListResult[T, D any](
	w http.ResponseWriter,
	r *http.Request,
	eh *ErrorHandler,
	res result.Result[[]T],
	err error,
	failStatus int,
	render func(T) D,
) {
	if err != nil {
		eh.Handle(w, r, err)
		return
	}
	if !res.IsSuccess() {
		eh.Failure(w, r, failStatus, res.Failure())
		return
	}

	items := make([]D, 0, len(res.Value()))
	for _, v := range res.Value() {
		items = append(items, render(v))
	}
	WriteList(w, items)
}

// writeEmptyResult answers 204 on success.
func writeEmptyResult(
	w http.ResponseWriter,
	r *http.Request,
	eh *ErrorHandler,
	res result.Result[struct{}],
	err error,
	failStatus int,
) {
	if err != nil {
		eh.Handle(w, r, err)
		return
	}
	if !res.IsSuccess() {
		eh.Failure(w, r, failStatus, res.Failure())
		return
	}
	WriteNoContent(w)
}
