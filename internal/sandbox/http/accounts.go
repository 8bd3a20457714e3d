package http

import (
	"errors"
	"net/http"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type AccountsHandler struct {
	LedgerService *service.LedgerService
}

type accountsResponse struct {
	Data []domain.Account `json:"data"`
}

// ServeHTTP returns a snapshot of all mock accounts.
//
//	@Summary	List accounts with current balances
//	@Tags		Accounts
//	@Produce	json
//	@Success	200	{object}	accountsResponse
//	@Failure	429	{object}	httpx.ErrorResponse	"Service rate limit exceeded"
//	@Security	BearerAuth
//	@Router		/v1/accounts [get].
func (h *AccountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.LedgerService.GetBalances(ctx)
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			writeRateLimited(w)
			return
		}
		slogx.FromContext(ctx).Error("account listing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Account listing failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsResponse{Data: accounts})
}
