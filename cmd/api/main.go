package main

import (
	"fmt"
	"net/http"

	"github.com/bress-dev/absensi-backend-go/internal/config"
	appHTTP "github.com/bress-dev/absensi-backend-go/internal/handler/http"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/cron"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/database"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/holiday"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/jwt"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/sse"
	"github.com/bress-dev/absensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/bress-dev/absensi-backend-go/internal/service/attendance"
	serviceAuth "github.com/bress-dev/absensi-backend-go/internal/service/auth"
	permissionService "github.com/bress-dev/absensi-backend-go/internal/service/permission"
	reportService "github.com/bress-dev/absensi-backend-go/internal/service/report"
	userService "github.com/bress-dev/absensi-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()
	holidayCache := holiday.NewCache(holiday.NewClient(cfg.Holiday.BaseURL), cfg.Holiday.CacheTTL)

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, jwtRepo)
	userSvc := userService.NewUserService(db, userRepo, jwtRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, permissionRepo, userRepo, hub, cfg.Attendance)
	permissionSvc := permissionService.NewPermissionService(permissionRepo, attendanceRepo)
	reportSvc := reportService.NewReportService(userRepo, attendanceRepo, permissionRepo, holidayCache)

	router := appHTTP.NewRouter(cfg, appHTTP.RouterDeps{
		JWTService:        JWTService,
		AuthHandler:       appHTTP.NewAuthHandler(JWTService, authSvc),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		PermissionHandler: appHTTP.NewPermissionHandler(permissionSvc),
		ReportHandler:     appHTTP.NewReportHandler(reportSvc),
		MonitoringHandler: appHTTP.NewMonitoringHandler(attendanceSvc, JWTService, hub),
		UserHandler:       appHTTP.NewUserHandler(userSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(holidayCache, jwtRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
