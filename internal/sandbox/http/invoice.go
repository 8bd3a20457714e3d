package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type InvoicesHandler struct {
	InvoiceService *service.InvoiceService
	Validate       *validator.Validate
}

type invoiceRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// ServeHTTP generates a mock invoice for the requested billing period.
//
//	@Summary	Generate an invoice
//	@Tags		Invoices
//	@Accept		json
//	@Produce	json
//	@Param		body	body		invoiceRequest	true	"Billing period, dates as YYYY-MM-DD"
//	@Success	200		{object}	domain.Invoice
//	@Failure	400		{object}	httpx.ErrorResponse	"Start date after end date"
//	@Failure	429		{object}	httpx.ErrorResponse	"Service rate limit exceeded"
//	@Security	BearerAuth
//	@Router		/v1/invoices [post].
func (h *InvoicesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invoiceRequest
	if !decodeJSON(w, r, &req) || !validateStruct(w, h.Validate, &req) {
		return
	}

	// Format is guaranteed by the datetime validator above.
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	invoice, err := h.InvoiceService.Generate(ctx, start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRange):
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_range", "Start date must not be after end date")
		case errors.Is(err, service.ErrRateLimited):
			writeRateLimited(w)
		default:
			log.Error("invoice generation failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Invoice generation failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invoice)
}
