package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/payroll"
	"github.com/peoplebase/hrm-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Upsert implements PayrollHandler.
func (h *PayrollHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var upsertReq payroll.UpsertRequest

	if err := json.NewDecoder(r.Body).Decode(&upsertReq); err != nil {
		slog.Error("Upsert payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.Upsert(r.Context(), upsertReq)
	if err != nil {
		slog.Error("Upsert payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payroll record saved",
		"employee_id", resp.EmployeeID,
		"effective_from", resp.EffectiveFrom,
		"net_salary", resp.NetSalary,
	)
	response.SuccessWithMessage(w, "Payroll record saved", resp)
}

// GetMy implements PayrollHandler.
func (h *PayrollHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.GetMyPayroll(r.Context())
	if err != nil {
		slog.Error("GetMyPayroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetByEmployee implements PayrollHandler.
func (h *PayrollHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.payrollService.GetEmployeePayroll(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetEmployeePayroll service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// History implements PayrollHandler.
func (h *PayrollHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	records, err := h.payrollService.GetEmployeePayrollHistory(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetEmployeePayrollHistory service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.payrollService.ListPayrolls(r.Context())
	if err != nil {
		slog.Error("ListPayrolls service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Payslip implements PayrollHandler.
func (h *PayrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	pdfBytes, err := h.payrollService.Payslip(r.Context(), recordID)
	if err != nil {
		slog.Error("Payslip service error", "error", err, "record_id", recordID)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", recordID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
