package report

import (
	"context"
	"io"
)

// ReportService produces the reconciled attendance rekap and its exports.
type ReportService interface {
	// Rekap reconciles attendance, permissions and the holiday calendar
	// into a dense per-user-per-day timeline plus per-user summaries.
	Rekap(ctx context.Context, req RekapRequest) (RekapResponse, error)

	// RekapCSV writes the detail rows as CSV with localized labels.
	RekapCSV(ctx context.Context, req RekapRequest, w io.Writer) error

	// RekapDocument groups the rekap by user for the print/report layer.
	RekapDocument(ctx context.Context, req RekapRequest) (RekapDocument, error)
}
