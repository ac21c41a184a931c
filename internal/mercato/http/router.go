package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mercatohq/mercato/internal/mercato/service"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/httpx"
	"github.com/mercatohq/mercato/pkg/jwtx"
	"github.com/mercatohq/mercato/pkg/slogx"

	_ "github.com/mercatohq/mercato/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	CatalogService *service.CatalogService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerCategories()
	r.registerProducts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mercato API
//	@version		0.1.0
//	@description	REST API for user management and a product catalog. Authentication uses
//	@description	HMAC-signed JWT bearer tokens obtained from the login endpoint.
//
//	@contact.name				Mercato Team
//	@contact.url				https://github.com/mercatohq/mercato
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, UserService: r.UserService}
	activeUser := requireActiveUser(r.store)

	// POST /auth/login - strict rate limit by IP + username form field to
	// slow down credential stuffing against a single account.
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /auth/login-json - the username lives in the JSON body, so the
	// limiter can only key on IP here.
	r.Mux.Handle("POST /api/v1/auth/login-json",
		httpx.Chain(http.HandlerFunc(h.HandleLoginJSON),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/auth/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	activeUser := requireActiveUser(r.store)

	// POST /users/register - public signup endpoint, strict limit by IP
	r.Mux.Handle("POST /api/v1/users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Read endpoints - authenticated, lenient limit by user
	r.Mux.Handle("GET /api/v1/users/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/users/count/total",
		httpx.Chain(http.HandlerFunc(h.HandleCount),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/users/{$}",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RequireSelf("id"), // users can only read their own record
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Write endpoints - authenticated, self-only, moderate limit
	r.Mux.Handle("PUT /api/v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RequireSelf("id"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /api/v1/users/{id}/toggle-status",
		httpx.Chain(http.HandlerFunc(h.HandleToggleStatus),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RequireSelf("id"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/v1/users/{id}/soft",
		httpx.Chain(http.HandlerFunc(h.HandleSoftDelete),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RequireSelf("id"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/v1/users/{id}/hard",
		httpx.Chain(http.HandlerFunc(h.HandleHardDelete),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RequireSelf("id"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CatalogService: r.CatalogService}
	activeUser := requireActiveUser(r.store)

	// Reads are public (catalog browsing), writes require authentication.
	r.Mux.Handle("GET /api/v1/categories/{$}",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/categories/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/categories/{$}",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/v1/categories/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/v1/categories/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{CatalogService: r.CatalogService}
	activeUser := requireActiveUser(r.store)

	r.Mux.Handle("GET /api/v1/products/{$}",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/products/{$}",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/v1/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			activeUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}
