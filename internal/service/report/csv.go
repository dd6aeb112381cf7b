package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bress-dev/absensi-backend-go/internal/domain/report"
)

var csvHeaders = []string{
	"Nama", "Email", "Tanggal", "Status", "Jam Masuk", "Jam Keluar",
	"Jam Kerja", "Tipe Izin", "Status Izin", "Keterangan Libur", "Catatan",
}

// WriteCSV renders detail rows as CSV with localized labels. encoding/csv
// quotes fields as needed per RFC 4180.
func WriteCSV(w io.Writer, detail []report.DayRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range detail {
		record := []string{
			row.Name,
			row.Email,
			row.Date,
			report.StatusLabel(row.Status),
			orDash(row.CheckIn),
			orDash(row.CheckOut),
			row.WorkHours,
			report.PermissionTypeLabel(row.PermissionType),
			report.PermissionStatusLabel(row.PermissionStatus),
			orDash(row.HolidayName),
			orDashString(row.Notes),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func orDashString(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
