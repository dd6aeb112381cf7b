package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/handler/http/response"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/jwt"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/sse"
	serviceAttendance "github.com/bress-dev/absensi-backend-go/internal/service/attendance"
	"github.com/go-chi/jwtauth/v5"
)

// MonitoringHandler serves the admin live-attendance view: a snapshot of
// every employee's status today plus an SSE stream of check-in/out events.
type MonitoringHandler interface {
	Snapshot(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type MonitoringHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
}

func NewMonitoringHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub) MonitoringHandler {
	return &MonitoringHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
	}
}

// Snapshot implements MonitoringHandler.
func (h *MonitoringHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	rows, err := h.attendanceService.Monitoring(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// GetSSEToken generates a short-lived token for the monitoring stream
func (h *MonitoringHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	role, _ := claims["role"].(string)

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID, user.Role(role))
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream handles the SSE connection for real-time attendance events
func (h *MonitoringHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (EventSource doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	_, role, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	if role != user.RoleAdmin {
		http.Error(w, "Admin privilege required", http.StatusForbidden)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(serviceAttendance.MonitoringTopic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
