package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/api/http/httpx"
	"github.com/dtroode/authkeeper/internal/api/http/middleware"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// Options tunes transport behaviour.
type Options struct {
	RequestTimeout time.Duration
	SecureCookie   bool
	HTTPS          bool
}

// Router represents the HTTP router for account endpoints.
type Router struct {
	accountService handler.AccountService
	tokens         model.TokenManager
	pinger         handler.Pinger
	contextManager model.ContextManager
	options        Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	accountService handler.AccountService,
	tokens model.TokenManager,
	pinger handler.Pinger,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountService: accountService,
		tokens:         tokens,
		pinger:         pinger,
		contextManager: contextManager,
		options:        options,
		logger:         logger,
	}
}

// Register builds the chi router with the middleware stack and all routes.
func (r *Router) Register() http.Handler {
	timeout := r.options.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logging := middleware.NewLogging(r.logger)
	secure := middleware.NewSecure(r.options.HTTPS, r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	adminOnly := middleware.RequireRole(r.contextManager, model.RoleAdmin)

	accounts := handler.NewAccount(r.accountService, r.contextManager, r.tokens.TTL(), r.options.SecureCookie, r.logger)
	catalog := handler.NewCatalog()
	health := handler.NewHealth(r.pinger, r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RealIP,
		chimw.RequestID,
		logging.Handle,
		chimw.Recoverer,
		chimw.Timeout(timeout),
		secure.Handle,
	)
	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "route not found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	mux.Get("/healthz", health.Check)

	mux.Route("/api/v1", func(api chi.Router) {
		api.Route("/users", func(users chi.Router) {
			users.Post("/", accounts.Register)
			users.Post("/login", accounts.Login)
			users.Post("/logout", accounts.Logout)

			users.Group(func(authed chi.Router) {
				authed.Use(authenticate.Handle)

				authed.Get("/me", accounts.GetProfile)
				authed.Patch("/me", accounts.UpdateProfile)
				authed.Patch("/password", accounts.ChangePassword)
				authed.Patch("/admin", accounts.ElevateSelf)
				authed.Delete("/deactivate", accounts.SoftDelete)

				authed.Group(func(admin chi.Router) {
					admin.Use(adminOnly)

					admin.Patch("/{external_id}/role", accounts.ChangeRole)
					admin.Delete("/", accounts.HardDelete)
					admin.Post("/admin/joke", catalog.Joke)
				})
			})
		})

		api.Route("/mock", func(mock chi.Router) {
			mock.Use(authenticate.Handle)

			mock.Get("/products", catalog.Products)
			mock.Get("/orders", catalog.Orders)
		})
	})

	return mux
}
