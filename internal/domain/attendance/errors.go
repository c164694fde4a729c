package attendance

import "errors"

// Attendance domain errors
var (
	// Workflow errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// Validation errors
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be before check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
