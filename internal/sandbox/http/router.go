package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/internal/sandbox/service"
	"github.com/lumenpay/sandbox/internal/sandbox/store"
	"github.com/lumenpay/sandbox/pkg/httpx"
	"github.com/lumenpay/sandbox/pkg/jwtx"
	"github.com/lumenpay/sandbox/pkg/slogx"

	_ "github.com/lumenpay/sandbox/api/sandbox" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for the HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	validate     *validator.Validate

	store store.Store

	AuthService        *service.AuthService
	LedgerService      *service.LedgerService
	TransactionService *service.TransactionService
	InvoiceService     *service.InvoiceService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSubscription()
	r.registerAccounts()
	r.registerTransactions()
	r.registerInvoices()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Lumenpay Sandbox API
//	@version		0.1.0
//	@description	Mock financial-API sandbox backing the dashboard UI: demo
//	@description	authentication, a fixed ledger of mock accounts, transfers,
//	@description	a paginated transaction log and invoice generation. No real
//	@description	money is ever moved.
//
//	@contact.name				Lumenpay Team
//	@contact.url				https://github.com/lumenpay/sandbox
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /v1/auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService, Validate: r.validate}
	register := &RegisterHandler{AuthService: r.AuthService, Validate: r.validate}
	logout := &LogoutHandler{AuthService: r.AuthService}
	session := &SessionHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict limit (brute force prevention).
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(register, httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	// Logout is unconditional by contract, so no authn gate.
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logout, httpx.RateLimitByIP(httpx.ModerateLimit)),
	)
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(session, httpx.RateLimitByIP(httpx.LenientLimit)),
	)
}

func (r *Router) registerSubscription() {
	h := &SubscriptionHandler{AuthService: r.AuthService, Validate: r.validate}

	r.Mux.Handle("POST /v1/subscription",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{LedgerService: r.LedgerService}
	transfer := &TransferHandler{LedgerService: r.LedgerService, Validate: r.validate}

	r.Mux.Handle("GET /v1/accounts",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/transfers",
		httpx.Chain(transfer,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTransactions() {
	h := &TransactionsHandler{TransactionService: r.TransactionService}

	r.Mux.Handle("GET /v1/transactions",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerInvoices() {
	h := &InvoicesHandler{InvoiceService: r.InvoiceService, Validate: r.validate}

	r.Mux.Handle("POST /v1/invoices",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
