package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// ServeHTTP handles demo login.
//
//	@Summary		Login with demo credentials
//	@Description	Checks the credentials against the sandbox's fixed set and establishes the session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse	"Session token and user record"
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"Unknown email or wrong password"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if !decodeJSON(w, r, &req) || !validateStruct(w, h.Validate, &req) {
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized,
				"invalid_credentials", "Unknown email or wrong password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
