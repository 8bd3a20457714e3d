package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type SubscriptionHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

type subscriptionRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// ServeHTTP subscribes the current user to a tier. With no current user
// the call succeeds with no content, mirroring the service's no-op.
//
//	@Summary	Update the current user's subscription
//	@Tags		Subscription
//	@Accept		json
//	@Produce	json
//	@Param		body	body		subscriptionRequest	true	"Desired tier (basic, pro or enterprise)"
//	@Success	200		{object}	domain.User			"Updated user record"
//	@Success	204		"No current user, nothing to update"
//	@Failure	400		{object}	httpx.ErrorResponse	"Unknown tier"
//	@Security	BearerAuth
//	@Router		/v1/subscription [post].
func (h *SubscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req subscriptionRequest
	if !decodeJSON(w, r, &req) || !validateStruct(w, h.Validate, &req) {
		return
	}

	user, err := h.AuthService.UpdateSubscription(ctx, req.Tier)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTier) {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_tier", "Tier must be one of basic, pro or enterprise")
			return
		}
		log.Error("subscription update failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Subscription update failed")
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
