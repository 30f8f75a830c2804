package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/api/shared"
	"github.com/yaolab/liuyao-api/internal/config"
	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/platform/logger"
	"github.com/yaolab/liuyao-api/internal/redact"
	"github.com/yaolab/liuyao-api/internal/service/auth"
	"github.com/yaolab/liuyao-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	tokenLifetime    time.Duration
	timeFunc         func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// The auth config supplies the access token lifetime reported in responses.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	authConfig config.AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		tokenLifetime:    time.Duration(authConfig.TokenLifetimeMinutes) * time.Minute,
		timeFunc:         time.Now,
	}
}

// tokenPair bundles the outcome of issuing a fresh access/refresh pair.
type tokenPair struct {
	accessToken  string
	refreshToken string
	expiresAt    string
}

// issueTokens generates a fresh access and refresh token pair for the user.
func (h *AuthHandler) issueTokens(ctx context.Context, userID uuid.UUID) (tokenPair, error) {
	accessToken, err := h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return tokenPair{}, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return tokenPair{}, err
	}

	return tokenPair{
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    h.timeFunc().UTC().Add(h.tokenLifetime).Format(time.RFC3339),
	}, nil
}

// Register handles the /auth/register endpoint. On success it stores the
// new user and returns a fresh token pair alongside the user ID.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		log.Error("failed to create user", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tokens, err := h.issueTokens(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate tokens",
			"error", redact.Error(err),
			"user_id", user.ID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	log.Info("user registered", "user_id", user.ID)

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		AccessToken:  tokens.accessToken,
		RefreshToken: tokens.refreshToken,
		ExpiresAt:    tokens.expiresAt,
	})
}

// Login handles the /auth/login endpoint. Unknown emails and wrong passwords
// produce the same response so the endpoint cannot be used to probe for
// registered addresses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to get user by email", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokens, err := h.issueTokens(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate tokens",
			"error", redact.Error(err),
			"user_id", user.ID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	log.Info("user logged in", "user_id", user.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       user.ID,
		AccessToken:  tokens.accessToken,
		RefreshToken: tokens.refreshToken,
		ExpiresAt:    tokens.expiresAt,
	})
}

// RefreshToken handles the /auth/refresh endpoint. It validates the refresh
// token and rotates the pair: the response carries a new access token and a
// new refresh token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tokens, err := h.issueTokens(r.Context(), claims.UserID)
	if err != nil {
		log.Error("failed to generate tokens",
			"error", redact.Error(err),
			"user_id", claims.UserID)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	log.Debug("token pair refreshed", "user_id", claims.UserID)

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  tokens.accessToken,
		RefreshToken: tokens.refreshToken,
		ExpiresAt:    tokens.expiresAt,
	})
}
