package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplebase/hrm-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked in", "employee_id", resp.EmployeeID, "date", resp.Date)
	response.Created(w, "Checked in", resp)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked out", "employee_id", resp.EmployeeID, "date", resp.Date)
	response.SuccessWithMessage(w, "Checked out", resp)
}

// SetStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	var statusReq attendance.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		slog.Error("SetStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	statusReq.ID = chi.URLParam(r, "id")

	resp, err := h.attendanceService.SetStatus(r.Context(), statusReq)
	if err != nil {
		slog.Error("SetStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated", resp)
}

// GetMy implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetMyAttendance(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("GetMyAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetByEmployee implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.EmployeeID = chi.URLParam(r, "employeeID")

	records, err := h.attendanceService.GetEmployeeAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("GetEmployeeAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAttendance(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func filterFromQuery(r *http.Request) attendance.ListFilter {
	var filter attendance.ListFilter

	if start := r.URL.Query().Get("start_date"); start != "" {
		if t, err := time.ParseInLocation("2006-01-02", start, time.UTC); err == nil {
			filter.StartDate = t
		}
	}
	if end := r.URL.Query().Get("end_date"); end != "" {
		if t, err := time.ParseInLocation("2006-01-02", end, time.UTC); err == nil {
			filter.EndDate = t
		}
	}

	return filter
}
