package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ttnppedr/banking-system/internal/models"
)

type TransactionHandler struct {
	ledger    LedgerService
	accounts  AccountService
	queries   TransactionQueries
	validator *Validator
}

func NewTransactionHandler(ledger LedgerService, accounts AccountService, queries TransactionQueries) *TransactionHandler {
	return &TransactionHandler{
		ledger:    ledger,
		accounts:  accounts,
		queries:   queries,
		validator: NewValidator(),
	}
}

func (h *TransactionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	return r
}

type createTransactionRequest struct {
	UserID *int64  `json:"userId" validate:"required"`
	Amount *int64  `json:"amount" validate:"required,min=1"`
	Type   *string `json:"type" validate:"required,oneof=DEPOSIT WITHDRAW TRANSFER"`
	ToID   *int64  `json:"toId" validate:"required_if=Type TRANSFER"`
}

func (req createTransactionRequest) command() (models.LedgerCommand, error) {
	kind, err := models.ParseTransactionType(*req.Type)
	if err != nil {
		return models.LedgerCommand{}, err
	}
	cmd := models.LedgerCommand{Type: kind, UserID: *req.UserID, Amount: *req.Amount}
	if kind == models.TransactionTransfer {
		cmd.ToID = *req.ToID
	}
	return cmd, nil
}

// Create applies a deposit, withdrawal or transfer and returns the resulting
// transaction with its accounts resolved.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	cmd, err := req.command()
	if err != nil {
		internalError(w, r, err)
		return
	}

	// Unknown parties are reported before the ledger is touched.
	parties := []int64{cmd.UserID}
	if cmd.Type == models.TransactionTransfer {
		parties = append(parties, cmd.ToID)
	}
	for _, id := range parties {
		account, err := h.accounts.GetAccountByID(r.Context(), id)
		if err != nil {
			internalError(w, r, err)
			return
		}
		if account == nil {
			notFound(w, r)
			return
		}
	}

	view, err := h.ledger.Apply(r.Context(), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, r, view)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	view, err := h.queries.GetTransaction(r.Context(), id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if view == nil {
		notFound(w, r)
		return
	}
	respondOK(w, r, view)
}
