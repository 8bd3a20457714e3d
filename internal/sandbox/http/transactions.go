package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

// ServeHTTP returns one page of the transaction log, newest first.
// Unparsable page parameters fall back to the first page.
//
//	@Summary	List transactions
//	@Tags		Transactions
//	@Produce	json
//	@Param		page		query		int	false	"Page number, 1-based"	default(1)
//	@Param		page_size	query		int	false	"Entries per page"		default(10)
//	@Success	200			{object}	service.TransactionPage
//	@Failure	429			{object}	httpx.ErrorResponse	"Service rate limit exceeded"
//	@Security	BearerAuth
//	@Router		/v1/transactions [get].
func (h *TransactionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)

	result, err := h.TransactionService.List(ctx, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			writeRateLimited(w)
			return
		}
		slogx.FromContext(ctx).Error("transaction listing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Transaction listing failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
