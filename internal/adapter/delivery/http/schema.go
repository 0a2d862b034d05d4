package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shortly-app/shortly/internal/entity"
)

// shortenRequest represents the payload for creating a shortened URL.
type shortenRequest struct {
	LongURL     string `json:"longUrl" validate:"required,http_url"`
	CustomAlias string `json:"customAlias" validate:"omitempty"`
}

// modifyRequest represents the payload for replacing a URL's destination.
type modifyRequest struct {
	LongURL string `json:"longUrl" validate:"required,http_url"`
}

// urlResponse represents a shortened URL in API responses.
type urlResponse struct {
	ShortCode string    `json:"shortCode"`
	LongURL   string    `json:"longUrl"`
	ShortURL  string    `json:"shortUrl"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ShortCode: url.ShortCode,
		LongURL:   url.LongURL,
		ShortURL:  url.ShortURL,
		Clicks:    url.Clicks,
		CreatedAt: url.CreatedAt,
		ExpiresAt: url.ExpiresAt,
	}
}

// urlStatsResponse adds the click history to the URL payload.
type urlStatsResponse struct {
	urlResponse
	ClickTimestamps []time.Time `json:"clickTimestamps"`
}

func toURLStatsResponse(url *entity.URL) urlStatsResponse {
	timestamps := url.ClickTimestamps
	if timestamps == nil {
		timestamps = []time.Time{}
	}

	return urlStatsResponse{
		urlResponse:     toURLResponse(url),
		ClickTimestamps: timestamps,
	}
}

// registerRequest represents the payload for password registration.
type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// loginRequest represents the payload for password login.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse represents an account in API responses. The password hash
// never leaves the server.
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Message: "invalid request body",
	}

	urlNotFoundResponse = errorResponse{
		Message: "short url not found",
	}

	urlExpiredResponse = errorResponse{
		Message: "short url has expired",
	}

	aliasTakenResponse = errorResponse{
		Message: "custom alias already in use",
	}

	invalidAliasResponse = errorResponse{
		Message: "invalid custom alias format",
	}

	notOwnerResponse = errorResponse{
		Message: "url belongs to another user",
	}

	unauthorizedResponse = errorResponse{
		Message: "unauthorized",
	}

	invalidCredentialsResponse = errorResponse{
		Message: "invalid credentials",
	}

	emailTakenResponse = errorResponse{
		Message: "user already exists",
	}

	tooManyRequestsResponse = errorResponse{
		Message: "too many requests, please try again later",
	}

	serverErrorResponse = errorResponse{
		Message: "server error occurred",
	}
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "http_url":
		return "invalid url"
	case "email":
		return "invalid email"
	case "min":
		return "value is too short"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
