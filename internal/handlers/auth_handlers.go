package handlers

import (
	"net/http"
	"strconv"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/auth"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.BindAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if _, err := h.authService.RegisterUser(r.Context(), &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, models.MessageResponse{Message: constants.MsgUserRegistered})
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.BindAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.authService.AuthenticateUser(r.Context(), &creds)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Logout revokes the session behind the bearer token of the request.
// With ?all=true every session of the caller is revoked.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	jwtID, ok := auth.GetJWTID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	if raw := r.URL.Query().Get(constants.QueryParamAll); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorFromAppError(w, utils.NewValidationError(constants.QueryParamAll, "Must be true or false"))
			return
		}
		if all {
			h.logoutAll(w, r)
			return
		}
	}

	if err := h.authService.Logout(r.Context(), jwtID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: constants.MsgLoggedOut})
}

func (h *AuthHandler) logoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	if err := h.authService.LogoutAll(r.Context(), userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: constants.MsgLoggedOutAll})
}
