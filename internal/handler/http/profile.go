package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateMyPersonal(w http.ResponseWriter, r *http.Request)
	UpdatePersonal(w http.ResponseWriter, r *http.Request)
	UpdateJob(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// GetMy implements ProfileHandler.
func (h *ProfileHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	resp, err := h.profileService.GetMyProfile(r.Context())
	if err != nil {
		slog.Error("GetMyProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Get implements ProfileHandler.
func (h *ProfileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.profileService.GetProfile(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetProfile service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements ProfileHandler.
func (h *ProfileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles(r.Context())
	if err != nil {
		slog.Error("ListProfiles service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, profiles)
}

// UpdateMyPersonal implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateMyPersonal(w http.ResponseWriter, r *http.Request) {
	h.updatePersonal(w, r, "")
}

// UpdatePersonal implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdatePersonal(w http.ResponseWriter, r *http.Request) {
	h.updatePersonal(w, r, chi.URLParam(r, "employeeID"))
}

func (h *ProfileHandlerImpl) updatePersonal(w http.ResponseWriter, r *http.Request, employeeID string) {
	var updateReq profile.UpdatePersonalRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdatePersonal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.EmployeeID = employeeID

	resp, err := h.profileService.UpdatePersonal(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdatePersonal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", resp)
}

// UpdateJob implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var updateReq profile.UpdateJobRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.EmployeeID = chi.URLParam(r, "employeeID")

	resp, err := h.profileService.UpdateJob(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job details updated", resp)
}
