package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bress-dev/absensi-backend-go/internal/domain/report"
	"github.com/bress-dev/absensi-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Rekap(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Rekap implements ReportHandler. The format query parameter selects the
// representation: json (default), csv download, or document (grouped per
// user for printing).
func (h *ReportHandlerImpl) Rekap(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.RekapRequest{
		Start:  query.Get("start"),
		End:    query.Get("end"),
		UserID: query.Get("user_id"),
	}

	switch query.Get("format") {
	case "csv":
		// Buffer so a late error still yields a proper error response
		// instead of a truncated download.
		var buf bytes.Buffer
		if err := h.reportService.RekapCSV(r.Context(), req, &buf); err != nil {
			slog.Error("Rekap CSV error", "error", err)
			response.HandleError(w, err)
			return
		}

		filename := fmt.Sprintf("rekap-absensi-%s-%s.csv", req.Start, req.End)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write(buf.Bytes())

	case "document":
		doc, err := h.reportService.RekapDocument(r.Context(), req)
		if err != nil {
			slog.Error("Rekap document error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.Success(w, doc)

	default:
		rekap, err := h.reportService.Rekap(r.Context(), req)
		if err != nil {
			slog.Error("Rekap error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.Success(w, rekap)
	}
}
