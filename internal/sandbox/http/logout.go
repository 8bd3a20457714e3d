package http

import (
	"net/http"

	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP clears the stored session. Logging out an already
// signed-out caller is not an error.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Success	204	"Session cleared"
//	@Failure	500	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.AuthService.Logout(ctx); err != nil {
		slogx.FromContext(ctx).Error("logout failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
