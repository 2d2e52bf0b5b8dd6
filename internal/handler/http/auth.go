package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := utils.ReadJSON(r.Body, &user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeError(w, r, err, "error registering user")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		writeError(w, r, err, "error creating token")
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Token:   token.SignedString,
		Message: "User created successfully",
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := utils.ReadJSON(r.Body, &user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeError(w, r, err, "error logging in")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err, "error creating token")
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString}, http.StatusOK)
}

// verify reports whether the bearer token of the request is valid. It checks
// the header itself so that a failure is answered with {valid:false}.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tokenString, err := tokenFromRequest(r)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		utils.WriteJSON(w, models.VerifyResponse{Valid: false, Message: err.Error()}, http.StatusUnauthorized)
		return
	}

	token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		utils.WriteJSON(w, models.VerifyResponse{Valid: false, Message: "Invalid token"}, http.StatusUnauthorized)
		return
	}

	claims := token.Claims()
	utils.WriteJSON(w, models.VerifyResponse{Valid: true, User: &claims}, http.StatusOK)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "unauthorized")
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error loading user")
		return
	}

	utils.WriteJSON(w, models.DashboardResponse{
		Message: "Welcome to your dashboard",
		User:    user,
	}, http.StatusOK)
}
