package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User checked in", "user_id", userID, "status", result.Status)
	response.Created(w, "Absen masuk berhasil", result)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User checked out", "user_id", userID)
	response.SuccessWithMessage(w, "Absen pulang berhasil", result)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Today(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter attendance.HistoryFilter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		filter.Limit = limit
	}

	result, err := h.attendanceService.History(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
