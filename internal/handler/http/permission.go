package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PermissionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type PermissionHandlerImpl struct {
	permissionService permission.PermissionService
}

func NewPermissionHandler(permissionService permission.PermissionService) PermissionHandler {
	return &PermissionHandlerImpl{permissionService: permissionService}
}

// Create implements PermissionHandler.
func (h *PermissionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req permission.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Permission create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	result, err := h.permissionService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Permission create service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Permission created", "user_id", userID, "type", result.Type)
	response.Created(w, "Keterangan berhasil disimpan", result)
}

// Today implements PermissionHandler.
func (h *PermissionHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.permissionService.Today(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements PermissionHandler.
func (h *PermissionHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
	}

	result, err := h.permissionService.History(r.Context(), userID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateStatus implements PermissionHandler. Admin only.
func (h *PermissionHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req permission.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Permission status decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.permissionService.UpdateStatus(r.Context(), req)
	if err != nil {
		slog.Error("Permission status service error", "error", err, "permission_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Status keterangan diperbarui", result)
}
