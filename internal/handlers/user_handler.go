package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ttnppedr/banking-system/internal/models"
)

type UserHandler struct {
	accounts  AccountService
	queries   TransactionQueries
	validator *Validator
}

func NewUserHandler(accounts AccountService, queries TransactionQueries) *UserHandler {
	return &UserHandler{
		accounts:  accounts,
		queries:   queries,
		validator: NewValidator(),
	}
}

func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Rename)
	r.Get("/{id}/transactions", h.Transactions)
	return r
}

type createUserRequest struct {
	Name    *string `json:"name" validate:"required,min=1"`
	Balance *int64  `json:"balance" validate:"required,min=0"`
}

type renameUserRequest struct {
	Name *string `json:"name" validate:"required,min=1"`
}

// Create opens an account.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.bind(w, r, &req) {
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), *req.Name, *req.Balance)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, r, account)
}

// List pages through accounts in insertion order, optionally filtered by an
// exact name or a name prefix.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, errs := paginationQuery(q)
	if len(errs) > 0 {
		unprocessable(w, r, errs)
		return
	}
	filter := models.AccountFilter{Name: q.Get("name"), NamePrefix: q.Get("namePrefix")}

	accounts, err := h.accounts.ListAccounts(r.Context(), filter, page)
	if err != nil {
		internalError(w, r, err)
		return
	}
	total, err := h.accounts.CountAccounts(r.Context(), filter)
	if err != nil {
		internalError(w, r, err)
		return
	}
	respondList(w, r, accounts, page, total)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	account, err := h.accounts.GetAccountByID(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if account == nil {
		notFound(w, r)
		return
	}
	respondOK(w, r, account)
}

func (h *UserHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	var req renameUserRequest
	if !h.bind(w, r, &req) {
		return
	}

	account, err := h.accounts.RenameAccount(r.Context(), id, *req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, r, account)
}

// Transactions lists the rows filed under the account, oldest first.
func (h *UserHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	q := r.URL.Query()
	page, errs := paginationQuery(q)
	from, fromErr := timeQuery(q, "createdAtFrom")
	to, toErr := timeQuery(q, "createdAtTo")
	for _, e := range []*APIError{fromErr, toErr} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(errs) > 0 {
		unprocessable(w, r, errs)
		return
	}

	account, err := h.accounts.GetAccountByID(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if account == nil {
		notFound(w, r)
		return
	}

	filter := models.TransactionFilter{UserID: id, CreatedFrom: from, CreatedTo: to}
	views, err := h.queries.ListTransactions(r.Context(), filter, page)
	if err != nil {
		internalError(w, r, err)
		return
	}
	total, err := h.queries.CountTransactions(r.Context(), filter)
	if err != nil {
		internalError(w, r, err)
		return
	}
	respondList(w, r, views, page, total)
}

// bind decodes and validates the body, writing the error response itself
// when it returns false.
func (h *UserHandler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	return bindJSON(w, r, h.validator, dst)
}

func bindJSON(w http.ResponseWriter, r *http.Request, v *Validator, dst any) bool {
	fieldErrs, err := decodeJSON(w, r, dst)
	if err != nil {
		invalidBody(w, r)
		return false
	}
	if len(fieldErrs) > 0 {
		unprocessable(w, r, fieldErrs)
		return false
	}
	if errs := v.ValidateStruct(dst); len(errs) > 0 {
		unprocessable(w, r, errs)
		return false
	}
	return true
}
