package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type TransferHandler struct {
	LedgerService *service.LedgerService
	Validate      *validator.Validate
}

// Amount carries no required tag on purpose: a missing or zero amount
// must surface as invalid_amount, not as a generic validation error.
type transferRequest struct {
	FromAccountID string  `json:"fromAccountId" validate:"required"`
	ToAccountID   string  `json:"toAccountId" validate:"required"`
	Amount        float64 `json:"amount"`
}

type transferResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// ServeHTTP executes a transfer between two mock accounts.
//
//	@Summary	Transfer funds between accounts
//	@Tags		Accounts
//	@Accept		json
//	@Produce	json
//	@Param		body	body		transferRequest	true	"Transfer order"
//	@Success	200		{object}	transferResponse
//	@Failure	400		{object}	httpx.ErrorResponse	"Invalid amount, same account or insufficient funds"
//	@Failure	404		{object}	httpx.ErrorResponse	"Unknown account"
//	@Failure	429		{object}	httpx.ErrorResponse	"Service rate limit exceeded"
//	@Security	BearerAuth
//	@Router		/v1/transfers [post].
func (h *TransferHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req transferRequest
	if !decodeJSON(w, r, &req) || !validateStruct(w, h.Validate, &req) {
		return
	}

	result, err := h.LedgerService.Transfer(ctx, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_amount", "Transfer amount must be greater than zero")
		case errors.Is(err, service.ErrSameAccount):
			httpx.WriteError(w, http.StatusBadRequest,
				"same_account", "Source and destination accounts must differ")
		case errors.Is(err, service.ErrInsufficientFunds):
			httpx.WriteError(w, http.StatusBadRequest,
				"insufficient_funds", "Source account balance is too low")
		case errors.Is(err, service.ErrAccountNotFound):
			httpx.WriteError(w, http.StatusNotFound,
				"account_not_found", "No account with that id")
		case errors.Is(err, service.ErrRateLimited):
			writeRateLimited(w)
		default:
			log.Error("transfer failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Transfer failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, transferResponse{
		Success:   true,
		Message:   result.Message,
		Reference: result.Reference,
	})
}
