package report

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

const trendDays = 7

var hundred = decimal.NewFromInt(100)

// Snapshot is a roster and the records read for it, aggregated as one unit.
type Snapshot struct {
	Roster  []employee.Employee
	Records []attendance.Attendance
}

// Aggregate tallies records by status and sums their hours. Every (roster
// member, day) pair in days without a record also counts as absent.
func Aggregate(records []attendance.Attendance, roster []employee.Employee, days []time.Time) report.Summary {
	summary := report.Summary{TotalHours: decimal.Zero}
	seen := make(map[string]struct{}, len(records))

	for _, r := range records {
		seen[r.EmployeeID+"|"+attendance.DateKey(r.Date)] = struct{}{}

		switch r.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		case attendance.StatusAbsent:
			summary.Absent++
		}
		summary.TotalHours = summary.TotalHours.Add(r.TotalHours)
	}

	for _, day := range days {
		key := attendance.DateKey(day)
		for _, e := range roster {
			if _, ok := seen[e.ID+"|"+key]; !ok {
				summary.Absent++
			}
		}
	}

	summary.TotalHours = summary.TotalHours.Round(2)
	return summary
}

// Absentees returns roster members with role employee that have no record in
// dayRecords, in roster order.
func Absentees(roster []employee.Employee, dayRecords []attendance.Attendance) []employee.Employee {
	recorded := make(map[string]struct{}, len(dayRecords))
	for _, r := range dayRecords {
		recorded[r.EmployeeID] = struct{}{}
	}

	absent := []employee.Employee{}
	for _, e := range roster {
		if e.Role != employee.RoleEmployee {
			continue
		}
		if _, ok := recorded[e.ID]; !ok {
			absent = append(absent, e)
		}
	}
	return absent
}

// IsPresentForTrend counts present and late. Half-day and absent do not count.
func IsPresentForTrend(status attendance.Status) bool {
	return status == attendance.StatusPresent || status == attendance.StatusLate
}

// TrendWindow returns the first and last day of the seven day window ending today.
func TrendWindow(today time.Time) (time.Time, time.Time) {
	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return end.AddDate(0, 0, -(trendDays - 1)), end
}

// WeeklyTrend returns one point per day for the seven days ending today,
// oldest first.
func WeeklyTrend(records []attendance.Attendance, today time.Time) []report.TrendPoint {
	counts := make(map[string]int)
	for _, r := range records {
		if IsPresentForTrend(r.Status) {
			counts[attendance.DateKey(r.Date)]++
		}
	}

	start, _ := TrendWindow(today)
	points := make([]report.TrendPoint, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		key := attendance.DateKey(start.AddDate(0, 0, i))
		points = append(points, report.TrendPoint{Date: key, Present: counts[key]})
	}
	return points
}

// DepartmentBreakdown groups records by the employee's department. Departments
// without records are omitted. Results are sorted by department name.
func DepartmentBreakdown(records []attendance.Attendance, roster []employee.Employee) []report.DepartmentStat {
	departments := make(map[string]string, len(roster))
	for _, e := range roster {
		departments[e.ID] = e.Department
	}

	stats := make(map[string]*report.DepartmentStat)
	for _, r := range records {
		dept, ok := departments[r.EmployeeID]
		if !ok && r.Department != nil {
			dept, ok = *r.Department, true
		}
		if !ok {
			continue
		}

		stat, exists := stats[dept]
		if !exists {
			stat = &report.DepartmentStat{Department: dept}
			stats[dept] = stat
		}
		stat.Total++
		if IsPresentForTrend(r.Status) {
			stat.Present++
		}
	}

	result := make([]report.DepartmentStat, 0, len(stats))
	for _, stat := range stats {
		stat.Percentage = decimal.NewFromInt(int64(stat.Present)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(stat.Total))).
			Round(1)
		result = append(result, *stat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Department < result[j].Department })
	return result
}

// TodayStatus partitions the roster for one day's records.
func TodayStatus(roster []employee.Employee, todayRecords []attendance.Attendance) report.TodayStatusView {
	view := report.TodayStatusView{
		Present: []attendance.Attendance{},
		Late:    []attendance.Attendance{},
		Absent:  Absentees(roster, todayRecords),
		Total:   len(roster),
	}
	for _, r := range todayRecords {
		if r.Status != attendance.StatusAbsent {
			view.Present = append(view.Present, r)
		}
		if r.Status == attendance.StatusLate {
			view.Late = append(view.Late, r)
		}
	}
	return view
}
