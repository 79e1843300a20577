package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"trekbooking/internal/api"
	"trekbooking/internal/booking"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"Booking ID", "Customer", "Email", "Phone", "Item", "Type",
	"Date", "Participants", "Total (INR)", "Status", "Payment", "Created",
}

// BuildBookingsWorkbook renders the admin listing into a spreadsheet.
func BuildBookingsWorkbook(rows []booking.AdminRow) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	for i, hdr := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, hdr); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		values := []any{
			row.Ref, row.CustomerName, row.CustomerEmail, row.CustomerPhone,
			row.ItemTitle, string(row.Target.Type),
			row.Date.Format("2006-01-02"), row.Participants, row.TotalAmount,
			string(row.Status), string(row.PaymentStatus), row.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportBookings streams the current (filtered) booking list as .xlsx.
func (h Handlers) ExportBookings(w http.ResponseWriter, r *http.Request) {
	f, err := bookingFilter(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status filter")
		return
	}

	rows, err := h.Bookings.ListAdmin(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	wb, err := BuildBookingsWorkbook(rows)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to build export")
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_ = wb.Write(w)
}
