package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const notAvailable = "N/A"

var exportHeader = []string{"Date", "Employee ID", "Name", "Department", "Check In", "Check Out", "Status", "Total Hours"}

// ExportRow returns the export columns for one record. Timestamps are
// rendered in loc; missing ones as N/A. Total hours use the shortest decimal.
func ExportRow(r attendance.Attendance, loc *time.Location) []string {
	return []string{
		attendance.DateKey(r.Date),
		deref(r.EmployeeCode),
		deref(r.EmployeeName),
		deref(r.Department),
		formatExportTime(r.CheckInTime, loc),
		formatExportTime(r.CheckOutTime, loc),
		string(r.Status),
		r.TotalHours.String(),
	}
}

// WriteCSV renders records with every value quoted and embedded quotes doubled.
func WriteCSV(records []attendance.Attendance, loc *time.Location) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportHeader, ","))
	buf.WriteByte('\n')

	for i, r := range records {
		row := ExportRow(r, loc)
		for j, value := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
			buf.WriteByte('"')
		}
		if i < len(records)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

const xlsxSheet = "Attendance"

// WriteXLSX renders records as a single sheet workbook.
func WriteXLSX(records []attendance.Attendance, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(xlsxSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		row := ExportRow(r, loc)
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			var v any = value
			if col == len(row)-1 {
				v = r.TotalHours.InexactFloat64()
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	_ = f.SetColWidth(xlsxSheet, "A", "A", 12)
	_ = f.SetColWidth(xlsxSheet, "B", "D", 20)
	_ = f.SetColWidth(xlsxSheet, "E", "F", 22)
	_ = f.SetColWidth(xlsxSheet, "G", "H", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatExportTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return notAvailable
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
