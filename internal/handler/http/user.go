package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
	"github.com/peoplebase/hrm-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// UpdateRole implements UserHandler.
func (h *UserHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.UserID = chi.URLParam(r, "id")

	if err := h.userService.UpdateRole(r.Context(), updateReq); err != nil {
		slog.Error("UpdateRole service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User role updated", "user_id", updateReq.UserID, "role", updateReq.Role)
	response.SuccessWithMessage(w, "Role updated", nil)
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		slog.Error("Delete user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User deleted", "user_id", userID)
	response.SuccessWithMessage(w, "User and related records deleted", nil)
}
