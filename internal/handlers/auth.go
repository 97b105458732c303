package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"accounts-service/internal/config"
	"accounts-service/internal/dto"
	"accounts-service/internal/middleware"
	"accounts-service/internal/models"
	"accounts-service/internal/repository"
	"accounts-service/internal/utils"
	"accounts-service/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	store  repository.UserStore
	jwt    *config.JWTConfig
	cookie *config.CookieConfig
	log    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(store repository.UserStore, jwt *config.JWTConfig, cookie *config.CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, jwt: jwt, cookie: cookie, log: log}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account and set the authentication cookie
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/sign-up [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if details := validation.ValidateRegister(&req); details != nil {
		utils.WriteValidationErrorResponse(w, details)
		return
	}

	// New accounts always start as regular users; a role in the payload is ignored.
	user, err := h.store.Create(r.Context(), req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "Email already registered")
			return
		}
		h.log.Error("create user failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.jwt)
	if err != nil {
		h.log.Error("generate token failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.SetAuthCookie(w, token, h.jwt.AccessTokenTTL, h.cookie.Secure)

	h.log.Info("user registered", zap.String("email", user.Email))

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and set the authentication cookie
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/sign-in [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if details := validation.ValidateLogin(&req); details != nil {
		utils.WriteValidationErrorResponse(w, details)
		return
	}

	// The same body is returned whether the email or the password was wrong.
	user, err := h.store.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
			return
		}
		h.log.Error("login lookup failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.jwt)
	if err != nil {
		h.log.Error("generate token failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.SetAuthCookie(w, token, h.jwt.AccessTokenTTL, h.cookie.Secure)

	h.log.Info("user logged in", zap.String("email", user.Email))

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    toUserResponse(user),
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the authentication cookie
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Router /api/auth/sign-out [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearAuthCookie(w, h.cookie.Secure)
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
