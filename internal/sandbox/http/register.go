package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
	Validate    *validator.Validate
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type registerResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ServeHTTP records a new sandbox credential. Registration never signs
// the caller in; they must log in afterwards.
//
//	@Summary		Register a sandbox account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"New account"
//	@Success		201		{object}	registerResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Email already registered"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if !decodeJSON(w, r, &req) || !validateStruct(w, h.Validate, &req) {
		return
	}

	if err := h.AuthService.Register(ctx, req.Email, req.Name, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict,
				"email_already_registered", "An account with that email already exists")
			return
		}
		log.Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Registration failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		Email:   req.Email,
		Name:    req.Name,
		Message: "Registration accepted, please log in",
	})
}
