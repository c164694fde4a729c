package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Employee returns the caller's dashboard
	Employee(w http.ResponseWriter, r *http.Request)
	// Manager returns the team dashboard
	Manager(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	reportService report.ReportService
}

func NewDashboardHandler(reportService report.ReportService) DashboardHandler {
	return &dashboardHandlerImpl{reportService: reportService}
}

// Employee handles GET /dashboard/employee
func (h *dashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetEmployeeDashboard(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Manager handles GET /dashboard/manager
func (h *dashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetManagerDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
