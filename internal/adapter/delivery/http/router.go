// Package http provides the HTTP delivery layer for the URL shortener
// service: the chi router, middleware and handlers translating domain
// errors to status codes.
package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/shortly-app/shortly/internal/entity"
	"github.com/shortly-app/shortly/internal/ratelimit"
	"github.com/shortly-app/shortly/internal/token"

	"golang.org/x/oauth2"
)

// URLUseCase defines the URL shortening business logic the handlers depend on.
type URLUseCase interface {
	ShortenURL(ctx context.Context, userID int64, longURL, customAlias string) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error)
	GetURLInfo(ctx context.Context, shortCode string) (*entity.URL, error)
	ListUserURLs(ctx context.Context, userID int64) ([]entity.URL, error)
	ModifyURL(ctx context.Context, userID int64, shortCode, longURL string) (*entity.URL, error)
	DeactivateURL(ctx context.Context, userID int64, shortCode string) error
}

// AuthUseCase defines the account management logic the handlers depend on.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetUser(ctx context.Context, userID int64) (*entity.User, error)
	FederateGoogle(ctx context.Context, googleID, name, email string) (*entity.User, error)
}

// RouterConfig carries the delivery layer dependencies and settings.
type RouterConfig struct {
	TokenManager *token.Manager
	Limiter      *ratelimit.Limiter
	GoogleOAuth  *oauth2.Config
	ClientURL    string
	CookieTTL    time.Duration
	SecureCookie bool
}

// getValidate initializes a validator that reports field names from JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes a chi router with all routes and middleware
// configured. Redirects are public but rate-limited; URL management
// routes require the token cookie.
func NewRouter(logger *httplog.Logger, urlUseCase URLUseCase, authUseCase AuthUseCase, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	validate := getValidate()
	urls := newURLHandler(urlUseCase, validate)
	auth := newAuthHandler(authUseCase, cfg.TokenManager, validate, cfg)
	requireAuth := authenticator(cfg.TokenManager)

	r.Get("/api/ping", handlePing)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.register)
		r.Post("/login", auth.login)
		r.With(requireAuth).Get("/me", auth.me)
		r.Get("/google", auth.googleLogin)
		r.Get("/google/callback", auth.googleCallback)
	})

	r.Route("/api/url", func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/shorten", urls.shorten)
		r.Get("/", urls.list)
		r.Put("/{shortCode}", urls.modify)
		r.Delete("/{shortCode}", urls.deactivate)
	})

	r.Get("/info/{shortCode}", urls.info)
	r.Get("/{shortCode}/stats", urls.stats)
	r.With(rateLimiter(cfg.Limiter)).Get("/{shortCode}", urls.redirect)

	return r
}

// handlePing handles health check requests to ensure the server is running.
func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong\n")) //nolint:errcheck
}
