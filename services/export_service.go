package services

import (
	"fmt"

	"github.com/deftec/counseling_platform/models"
	"github.com/xuri/excelize/v2"
)

var studentExportHeaders = []string{"Service Number", "Rank", "Full Name", "School", "Class", "Status"}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BuildStudentWorkbook renders the student roster as an xlsx workbook with
// a bold header row and one row per student.
func BuildStudentWorkbook(students []models.User) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := "Students"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, header := range studentExportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(studentExportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, boldStyle); err != nil {
		return nil, err
	}

	for i, student := range students {
		status := "Pending"
		if student.IsApproved {
			status = "Approved"
		}
		row := []interface{}{
			deref(student.ServiceNumber),
			deref(student.Rank),
			student.FullName(),
			deref(student.School),
			deref(student.ClassName),
			status,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
