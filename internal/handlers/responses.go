package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/ttnppedr/banking-system/internal/logger"
	"github.com/ttnppedr/banking-system/internal/models"
	"github.com/ttnppedr/banking-system/internal/services"
)

// APIError is one entry of an error envelope. Path names the offending JSON
// field and is empty for errors not tied to a field.
type APIError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type listResponse struct {
	Data any         `json:"data"`
	Meta models.Meta `json:"meta"`
}

type errorResponse struct {
	Errors []APIError `json:"errors"`
}

func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse{Data: data})
}

func respondList(w http.ResponseWriter, r *http.Request, data any, page models.Pagination, total int64) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, listResponse{
		Data: data,
		Meta: models.Meta{Page: page.Page, PerPage: page.PerPage, Total: total},
	})
}

func respondErrors(w http.ResponseWriter, r *http.Request, status int, errs ...APIError) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Errors: errs})
}

func badRequest(w http.ResponseWriter, r *http.Request, field, message string) {
	respondErrors(w, r, http.StatusBadRequest, APIError{Path: []string{field}, Message: message})
}

func unprocessable(w http.ResponseWriter, r *http.Request, errs []APIError) {
	respondErrors(w, r, http.StatusUnprocessableEntity, errs...)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondErrors(w, r, http.StatusNotFound, APIError{Path: []string{}, Message: "Not found"})
}

func invalidBody(w http.ResponseWriter, r *http.Request) {
	respondErrors(w, r, http.StatusBadRequest, APIError{Path: []string{}, Message: "Invalid request body"})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	respondErrors(w, r, http.StatusInternalServerError, APIError{Path: []string{}, Message: "Something went wrong"})
}

// respondError maps service errors to their HTTP envelope.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		notFound(w, r)
	case errors.Is(err, services.ErrDuplicateName):
		badRequest(w, r, "name", "User already exists")
	case errors.Is(err, services.ErrInsufficientBalance):
		badRequest(w, r, "amount", "Insufficient balance")
	case errors.Is(err, services.ErrSameAccount):
		badRequest(w, r, "toId", "Cannot transfer to the same account")
	case errors.Is(err, services.ErrInvalidAmount):
		unprocessable(w, r, []APIError{{Path: []string{"amount"}, Message: "Number must be greater than or equal to 1"}})
	case errors.Is(err, services.ErrNegativeBalance):
		unprocessable(w, r, []APIError{{Path: []string{"balance"}, Message: "Number must be greater than or equal to 0"}})
	case errors.Is(err, services.ErrUnknownTransactionType):
		unprocessable(w, r, []APIError{{Path: []string{"type"}, Message: "Invalid enum value. Expected 'DEPOSIT' | 'WITHDRAW' | 'TRANSFER'"}})
	default:
		internalError(w, r, err)
	}
}
