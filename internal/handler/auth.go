package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/countryexplorer/countryexplorer-go/internal/crypto"
	"github.com/countryexplorer/countryexplorer-go/internal/middleware"
	"github.com/countryexplorer/countryexplorer-go/internal/model"
	"github.com/countryexplorer/countryexplorer-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication and profile management.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// decodeBody decodes a JSON request body of at most 1MB into v, writing the
// appropriate error response on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// HandleRegister handles POST /api/v1/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidName):
			writeErrorDetails(w, http.StatusBadRequest, "Validation error", err.Error())
		case errors.Is(err, crypto.ErrWeakPassword):
			writeErrorDetails(w, http.StatusBadRequest, "Validation error", err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, success(resp, "User registered successfully"))
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, success(resp, "Login successful"))
}

// HandleRefresh handles POST /api/v1/auth/refresh requests.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrTokenExpired):
			writeError(w, http.StatusUnauthorized, "refresh token expired")
		case errors.Is(err, crypto.ErrWrongTokenKind):
			writeError(w, http.StatusUnauthorized, "invalid token type")
		case errors.Is(err, crypto.ErrInvalidToken), errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, success(map[string]any{"tokens": tokens}, "Token refreshed successfully"))
}

// HandleLogout handles POST /api/v1/auth/logout requests. Tokens are not
// tracked server-side, so logout just tells the client to discard them.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, success(nil, "Logged out successfully. Please remove tokens from client."))
}

// HandleGetProfile handles GET /api/v1/auth/profile requests.
func (h *AuthHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, success(resp, ""))
}

// HandleUpdateProfile handles PUT /api/v1/auth/profile requests.
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate), errors.Is(err, service.ErrInvalidName):
			writeErrorDetails(w, http.StatusBadRequest, "Validation error", err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, success(resp, "Profile updated successfully"))
}

// HandleChangePassword handles PUT /api/v1/auth/password requests.
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, crypto.ErrWeakPassword):
			writeErrorDetails(w, http.StatusBadRequest, "Validation error", err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, success(nil, "Password changed successfully"))
}

// HandleAddFavorite handles POST /api/v1/auth/favorites/{countryId} requests.
func (h *AuthHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	h.mutateFavorites(w, r, h.service.AddFavorite, "Country added to favorites")
}

// HandleRemoveFavorite handles DELETE /api/v1/auth/favorites/{countryId} requests.
func (h *AuthHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.mutateFavorites(w, r, h.service.RemoveFavorite, "Country removed from favorites")
}

func (h *AuthHandler) mutateFavorites(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID int64, countryID string) ([]string, error),
	message string,
) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	countryID := chi.URLParam(r, "countryId")
	if countryID == "" {
		writeError(w, http.StatusBadRequest, "countryId is required")
		return
	}

	favorites, err := op(r.Context(), userID, countryID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, success(map[string][]string{"favorites": favorites}, message))
}
