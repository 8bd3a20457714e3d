package http

import (
	"net/http"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
)

type SessionHandler struct {
	AuthService *service.AuthService
}

type sessionResponse struct {
	Active bool         `json:"active"`
	User   *domain.User `json:"user,omitempty"`
}

// ServeHTTP reports whether a session is currently established. The
// check only looks for a stored token; it does not re-verify it.
//
//	@Summary	Inspect the current session
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	sessionResponse
//	@Router		/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := sessionResponse{Active: h.AuthService.CheckToken(ctx)}
	if resp.Active {
		if user, ok := h.AuthService.CurrentUser(); ok {
			resp.User = &user
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
