package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

// EmployeeStore is an in-memory employee.EmployeeRepository.
type EmployeeStore struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee

	// Err, when set, is returned by every method.
	Err error
}

func NewEmployeeStore(employees ...employee.Employee) *EmployeeStore {
	s := &EmployeeStore{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		s.employees[e.ID] = e
	}
	return s
}

func (s *EmployeeStore) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return employee.Employee{}, s.Err
	}
	for _, existing := range s.employees {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if e.ID == "" {
		e.ID = NextID()
	}
	s.employees[e.ID] = e
	return e, nil
}

func (s *EmployeeStore) find(match func(employee.Employee) bool) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return employee.Employee{}, s.Err
	}
	for _, e := range s.employees {
		if match(e) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *EmployeeStore) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return s.find(func(e employee.Employee) bool { return e.ID == id })
}

func (s *EmployeeStore) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	return s.find(func(e employee.Employee) bool { return e.Email == email })
}

func (s *EmployeeStore) GetByEmployeeCode(_ context.Context, code string) (employee.Employee, error) {
	return s.find(func(e employee.Employee) bool { return e.EmployeeCode == code })
}

func (s *EmployeeStore) ListByRole(_ context.Context, role employee.Role) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := []employee.Employee{}
	for _, e := range s.employees {
		if e.Role == role {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeCode < result[j].EmployeeCode })
	return result, nil
}

// AttendanceStore is an in-memory attendance.AttendanceRepository keyed by
// (employee, day). List joins employee details from the roster when set.
type AttendanceStore struct {
	mu      sync.RWMutex
	records map[string]attendance.Attendance
	roster  *EmployeeStore
	now     func() time.Time

	// Err, when set, is returned by every method.
	Err error
}

func NewAttendanceStore(roster *EmployeeStore) *AttendanceStore {
	return &AttendanceStore{
		records: make(map[string]attendance.Attendance),
		roster:  roster,
		now:     ReferenceTime,
	}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + attendance.DateKey(date)
}

// Seed stores records as-is, replacing any record for the same day.
func (s *AttendanceStore) Seed(records ...attendance.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.ID == "" {
			r.ID = NextID()
		}
		s.records[recordKey(r.EmployeeID, r.Date)] = r
	}
}

// Len returns the number of stored records.
func (s *AttendanceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *AttendanceStore) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return attendance.Attendance{}, s.Err
	}

	key := recordKey(a.EmployeeID, a.Date)
	if existing, ok := s.records[key]; ok {
		if existing.HasCheckedIn() {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		a.ID = NextID()
		a.CreatedAt = s.now()
	}
	a.UpdatedAt = s.now()
	s.records[key] = a
	return a, nil
}

func (s *AttendanceStore) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if r, ok := s.records[recordKey(employeeID, date)]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *AttendanceStore) RecordCheckOut(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return attendance.Attendance{}, s.Err
	}

	key := recordKey(a.EmployeeID, a.Date)
	existing, ok := s.records[key]
	if !ok || !existing.HasCheckedIn() || existing.HasCheckedOut() {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	existing.CheckOutTime = a.CheckOutTime
	existing.TotalHours = a.TotalHours
	existing.UpdatedAt = s.now()
	s.records[key] = existing
	return existing, nil
}

func (s *AttendanceStore) List(_ context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	result := []attendance.Attendance{}
	for _, r := range s.records {
		key := attendance.DateKey(r.Date)
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && key < attendance.DateKey(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && key > attendance.DateKey(*filter.EndDate) {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if s.roster != nil {
			if e, ok := s.roster.lookup(r.EmployeeID); ok {
				name, code, dept := e.Name, e.EmployeeCode, e.Department
				r.EmployeeName, r.EmployeeCode, r.Department = &name, &code, &dept
			}
		}
		result = append(result, r)
	}

	sort.Slice(result, func(i, j int) bool {
		ki, kj := attendance.DateKey(result[i].Date), attendance.DateKey(result[j].Date)
		if ki != kj {
			return ki > kj
		}
		return deref(result[i].EmployeeCode) < deref(result[j].EmployeeCode)
	})
	return result, nil
}

func (s *EmployeeStore) lookup(id string) (employee.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	return e, ok
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
