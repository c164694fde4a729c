package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Caller's monthly summary
	MySummary(w http.ResponseWriter, r *http.Request)

	// Team-wide monthly summary
	TeamSummary(w http.ResponseWriter, r *http.Request)

	// Per-employee status for today
	TodayStatus(w http.ResponseWriter, r *http.Request)

	// CSV or XLSX download
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func monthFilterFromQuery(r *http.Request) attendance.MonthFilter {
	return attendance.MonthFilter{
		Month: optionalQuery(r, "month"),
		Year:  optionalQuery(r, "year"),
	}
}

// MySummary handles GET /attendance/my-summary
func (h *reportHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetMySummary(r.Context(), identity.UserID, monthFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamSummary handles GET /attendance/summary
func (h *reportHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetTeamSummary(r.Context(), monthFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodayStatus handles GET /attendance/today-status
func (h *reportHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetTodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /attendance/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var req report.ExportRequest

	req.EmployeeCode = optionalQuery(r, "employee_code")
	req.Format = optionalQuery(r, "format")
	req.StartDate = optionalQuery(r, "start_date")
	req.EndDate = optionalQuery(r, "end_date")

	file, err := h.reportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Error("Export write error", "error", err, "filename", file.Filename)
	}
}
