package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn handles POST /attendance/checkin
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut handles POST /attendance/checkout
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today handles GET /attendance/today. Data is null when the caller has no record yet.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result == nil {
		response.SuccessWithMessage(w, "No attendance recorded today", nil)
		return
	}
	response.Success(w, result)
}

// MyHistory handles GET /attendance/my-history
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := currentIdentity(w, r)
	if !ok {
		return
	}

	filter := attendance.MonthFilter{
		Month: optionalQuery(r, "month"),
		Year:  optionalQuery(r, "year"),
	}

	result, err := h.attendanceService.GetMyHistory(r.Context(), identity.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance/all
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.AttendanceFilter

	filter.EmployeeCode = optionalQuery(r, "employee_code")
	filter.Status = optionalQuery(r, "status")
	filter.StartDate = optionalQuery(r, "start_date")
	filter.EndDate = optionalQuery(r, "end_date")

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetByEmployee handles GET /attendance/employee/{id}
func (h *attendanceHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	filter := attendance.DateRangeFilter{
		StartDate: optionalQuery(r, "start_date"),
		EndDate:   optionalQuery(r, "end_date"),
	}

	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
