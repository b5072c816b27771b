package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const studentSheet = "Sheet1"

var studentHeader = []interface{}{"User ID", "Name", "Level", "XP", "Accuracy"}

// ExportStudents writes the student progress list to w as an xlsx workbook.
func (s *UserService) ExportStudents(w io.Writer) error {
	students, err := s.ListStudents()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(studentSheet, "A1", &studentHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{st.UserID, st.Name, st.Level, st.XP, st.Accuracy}
		if err := f.SetSheetRow(studentSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
