package booking

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shark062/EridesSouzaStudio/internal/model"
)

const exportSheet = "Agendamentos"

// ExportExcel renders all bookings matching the filter into an .xlsx
// workbook for the admin dashboard download.
func (s *Service) ExportExcel(ctx context.Context, filter *model.BookingFilter) ([]byte, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Data", "Hora", "Cliente", "Serviço", "Preço", "Status", "Observações"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(exportSheet, "A1", "G1", headerStyle)

	for row, b := range bookings {
		values := []interface{}{
			b.Date, b.Time, b.UserName, b.ServiceName,
			b.Price, string(b.Status), b.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "B", 12)
	_ = f.SetColWidth(exportSheet, "C", "D", 25)
	_ = f.SetColWidth(exportSheet, "E", "G", 15)
	_ = f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
