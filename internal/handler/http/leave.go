package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/leave"
	"github.com/peoplebase/hrm-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var applyReq leave.ApplyRequest

	if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.leaveService.Apply(r.Context(), applyReq)
	if err != nil {
		slog.Error("Apply leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request submitted", "employee_id", resp.EmployeeID, "type", resp.Type, "days", resp.Days)
	response.Created(w, "Leave request submitted", resp)
}

// Decide implements LeaveHandler.
func (h *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var decideReq leave.DecideRequest

	if err := json.NewDecoder(r.Body).Decode(&decideReq); err != nil {
		slog.Error("Decide leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	decideReq.ID = chi.URLParam(r, "id")

	resp, err := h.leaveService.Decide(r.Context(), decideReq)
	if err != nil {
		slog.Error("Decide leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request decided", "id", resp.ID, "status", resp.Status)
	response.SuccessWithMessage(w, "Leave request "+resp.Status, resp)
}

// GetMy implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.GetMyLeaves(r.Context())
	if err != nil {
		slog.Error("GetMyLeaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
	}

	requests, err := h.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		slog.Error("ListLeaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// MyBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	h.balance(w, r, "")
}

// Balance implements LeaveHandler.
func (h *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	h.balance(w, r, chi.URLParam(r, "employeeID"))
}

func (h *LeaveHandlerImpl) balance(w http.ResponseWriter, r *http.Request, employeeID string) {
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			slog.Error("Leave balance invalid as_of", "as_of", raw, "error", err)
			response.ValidationError(w, map[string]string{"as_of": "as_of must be a date in YYYY-MM-DD format"})
			return
		}
		asOf = t
	}

	resp, err := h.leaveService.Balance(r.Context(), employeeID, asOf)
	if err != nil {
		slog.Error("Leave balance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
