package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"accounts-service/internal/dto"
	"accounts-service/internal/middleware"
	"accounts-service/internal/models"
	"accounts-service/internal/repository"
	"accounts-service/internal/utils"
	"accounts-service/internal/validation"
)

// UserHandler handles user CRUD HTTP requests
type UserHandler struct {
	store repository.UserStore
	log   *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(store repository.UserStore, log *zap.Logger) *UserHandler {
	return &UserHandler{store: store, log: log}
}

// List handles listing all users
// @Summary List users
// @Description Get all user accounts
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersListResponse "Users retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	h.log.Info("getting users")

	users, err := h.store.List(r.Context())
	if err != nil {
		h.internalError(w, "list users", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UsersListResponse{
		Message: "Successfully retrieved users",
		Users:   toUserResponses(users),
		Count:   len(users),
	})
}

// GetByID handles fetching a single user
// @Summary Get user
// @Description Get a user account by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDetailResponse "User retrieved successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, details := validation.ParseUserID(r.PathValue("id"))
	if details != nil {
		utils.WriteValidationErrorResponse(w, details)
		return
	}

	h.log.Info("getting user", zap.Int64("id", id))

	user, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteJSONResponse(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		h.internalError(w, "get user", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserDetailResponse{
		Message: "Successfully retrieved user",
		User:    toUserResponse(user),
	})
}

// Update handles partial updates of a user
// @Summary Update user
// @Description Update a user account. Owners may change their own data, admins anyone's; only admins may change roles.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserDetailResponse "User updated successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, details := validation.ParseUserID(r.PathValue("id"))
	if details != nil {
		utils.WriteValidationErrorResponse(w, details)
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if details := validation.ValidateUpdateUser(&req); details != nil {
		utils.WriteValidationErrorResponse(w, details)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	// Users can only update their own information
	if claims.UserID != id && claims.Role != models.RoleAdmin {
		h.log.Warn("user attempted to update another user without permission",
			zap.String("email", claims.Email),
			zap.Int64("target_id", id))
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You can only update your own information")
		return
	}

	// Only admins can change roles
	if req.Role != nil && claims.Role != models.RoleAdmin {
		h.log.Warn("user attempted to change role without admin privileges",
			zap.String("email", claims.Email),
			zap.Int64("target_id", id))
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only admins can change user roles")
		return
	}

	// Build the update command explicitly; role is only carried for admins.
	upd := repository.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if claims.Role == models.RoleAdmin {
		upd.Role = req.Role
	}

	h.log.Info("updating user", zap.Int64("id", id))

	user, err := h.store.Update(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			utils.WriteJSONResponse(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, repository.ErrEmailTaken):
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "Email already in use")
		default:
			h.internalError(w, "update user", err)
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserDetailResponse{
		Message: "User updated successfully",
		User:    toUserResponse(user),
	})
}

// Delete handles removing a user
// @Summary Delete user
// @Description Delete a user account. Owners may delete their own account, admins anyone's.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDeletedResponse "User deleted successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, details := validation.ParseUserID(r.PathValue("id"))
	if details != nil {
		utils.WriteValidationErrorResponse(w, details)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	// Users can delete their own account, admins can delete any account
	if claims.UserID != id && claims.Role != models.RoleAdmin {
		h.log.Warn("user attempted to delete another user without permission",
			zap.String("email", claims.Email),
			zap.Int64("target_id", id))
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You can only delete your own account")
		return
	}

	h.log.Info("deleting user", zap.Int64("id", id))

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteJSONResponse(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		h.internalError(w, "delete user", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserDeletedResponse{
		Message: "User deleted successfully",
		ID:      id,
	})
}

func (h *UserHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op+" failed", zap.Error(err))
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserResponses(users []models.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
