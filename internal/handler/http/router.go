package http

import (
	"log/slog"
	"os"

	"github.com/bress-dev/absensi-backend-go/internal/config"
	"github.com/bress-dev/absensi-backend-go/internal/handler/http/middleware"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterDeps struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	PermissionHandler PermissionHandler
	ReportHandler     ReportHandler
	MonitoringHandler MonitoringHandler
	UserHandler       UserHandler
}

func NewRouter(cfg *config.Config, deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absensi-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// The monitoring stream authenticates with its own short-lived
		// token in the query string, outside the Verifier chain.
		r.Get("/admin/monitoring/stream", deps.MonitoringHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkin", deps.AttendanceHandler.CheckIn)
				r.Post("/checkout", deps.AttendanceHandler.CheckOut)
				r.Get("/today", deps.AttendanceHandler.Today)
				r.Get("/history", deps.AttendanceHandler.History)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", deps.UserHandler.Profile)
				r.Put("/", deps.UserHandler.UpdateProfile)
			})

			r.Route("/permission", func(r chi.Router) {
				r.Post("/", deps.PermissionHandler.Create)
				r.Get("/today", deps.PermissionHandler.Today)
				r.Get("/history", deps.PermissionHandler.History)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", deps.UserHandler.List)
					r.Get("/{id}", deps.UserHandler.Get)
					r.Put("/{id}", deps.UserHandler.Update)
					r.Delete("/{id}", deps.UserHandler.Delete)
				})

				r.Patch("/permission/{id}/status", deps.PermissionHandler.UpdateStatus)

				r.Get("/attendance/rekap", deps.ReportHandler.Rekap)

				r.Route("/monitoring", func(r chi.Router) {
					r.Get("/", deps.MonitoringHandler.Snapshot)
					r.Post("/token", deps.MonitoringHandler.GetSSEToken)
				})
			})
		})
	})
	return r
}
