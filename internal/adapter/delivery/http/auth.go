package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shortly-app/shortly/internal/entity"
	"github.com/shortly-app/shortly/internal/token"

	"golang.org/x/oauth2"
)

const stateCookie = "oauth_state"

// googleUserInfoURL is where the Google profile is fetched after the code
// exchange. Overridable in tests.
const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type authHandler struct {
	useCase      AuthUseCase
	tokens       *token.Manager
	validate     *validator.Validate
	oauth        *oauth2.Config
	clientURL    string
	cookieTTL    time.Duration
	secureCookie bool
	userInfoURL  string
}

func newAuthHandler(useCase AuthUseCase, tokens *token.Manager, validate *validator.Validate, cfg RouterConfig) *authHandler {
	return &authHandler{
		useCase:      useCase,
		tokens:       tokens,
		validate:     validate,
		oauth:        cfg.GoogleOAuth,
		clientURL:    cfg.ClientURL,
		cookieTTL:    cfg.CookieTTL,
		secureCookie: cfg.SecureCookie,
		userInfoURL:  googleUserInfoURL,
	}
}

func (h *authHandler) setTokenCookie(w http.ResponseWriter, tokenStr string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// register handles POST /auth/register.
func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	user, err := h.useCase.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrEmailExists) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emailTakenResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(user))
}

// login handles POST /auth/login and sets the token cookie on success.
func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	user, err := h.useCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, invalidCredentialsResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	tokenStr, err := h.tokens.Issue(user.ID)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	h.setTokenCookie(w, tokenStr)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toUserResponse(user))
}

// me handles GET /auth/me for the authenticated user.
func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, unauthorizedResponse)
		return
	}

	user, err := h.useCase.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, unauthorizedResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toUserResponse(user))
}

// googleLogin handles GET /auth/google: stores a random state in a
// short-lived cookie and sends the client to the Google consent page.
func (h *authHandler) googleLogin(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}
	state := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// googleUserInfo is the subset of the Google profile the service needs.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// googleCallback handles GET /auth/google/callback: verifies the state,
// exchanges the code, resolves the local user and sets the token cookie.
// Any failure redirects to the client login page.
func (h *authHandler) googleCallback(w http.ResponseWriter, r *http.Request) {
	failureURL := h.clientURL + "/login"

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	tok, err := h.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	resp, err := h.oauth.Client(r.Context(), tok).Get(h.userInfoURL)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}
	defer resp.Body.Close()

	var profile googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.ID == "" {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	user, err := h.useCase.FederateGoogle(r.Context(), profile.ID, profile.Name, profile.Email)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	tokenStr, err := h.tokens.Issue(user.ID)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	h.setTokenCookie(w, tokenStr)
	http.Redirect(w, r, h.clientURL, http.StatusFound)
}
