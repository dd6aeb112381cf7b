package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/config"
	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/domain/user"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/dateutil"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/sse"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance // userID + "|" + day key
	lastLimit int
	nextID    int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func attKey(userID string, date time.Time) string {
	return userID + "|" + dateutil.DayKey(date)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := attKey(att.UserID, att.Date)
	if _, ok := f.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[key] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[attKey(userID, date)]
	if !ok {
		return nil, nil
	}
	copied := att
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	key := attKey(att.UserID, att.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[key] = att
	return nil
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for _, att := range f.records {
		if userID != "" && att.UserID != userID {
			continue
		}
		if att.Date.Before(start) || att.Date.After(end) {
			continue
		}
		result = append(result, att)
	}
	return result, nil
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	f.lastLimit = limit
	var result []attendance.Attendance
	for _, att := range f.records {
		if att.UserID == userID {
			result = append(result, att)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakePermissionRepo struct {
	records map[string]permission.Permission // userID + "|" + day key
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{records: make(map[string]permission.Permission)}
}

func (f *fakePermissionRepo) Create(ctx context.Context, perm permission.Permission) (permission.Permission, error) {
	f.records[attKey(perm.UserID, perm.Date)] = perm
	return perm, nil
}

func (f *fakePermissionRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*permission.Permission, error) {
	perm, ok := f.records[attKey(userID, date)]
	if !ok {
		return nil, nil
	}
	copied := perm
	return &copied, nil
}

func (f *fakePermissionRepo) GetByID(ctx context.Context, id string) (permission.Permission, error) {
	return permission.Permission{}, permission.ErrPermissionNotFound
}

func (f *fakePermissionRepo) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]permission.Permission, error) {
	return nil, nil
}

func (f *fakePermissionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]permission.Permission, error) {
	return nil, nil
}

func (f *fakePermissionRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return permission.ErrPermissionNotFound
}

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	var result []user.User
	for _, u := range f.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error {
	return user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) error {
	return user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return user.ErrUserNotFound
}

// ===== TEST SETUP =====

// Jakarta city center, with a 100m office radius for geofence tests.
const (
	officeLat = -6.1754
	officeLng = 106.8272
)

func testConfig(radiusMeters float64) config.AttendanceConfig {
	return config.AttendanceConfig{
		LateThreshold:      "08:00:00",
		MinWorkDuration:    8 * time.Hour,
		OfficeLatitude:     officeLat,
		OfficeLongitude:    officeLng,
		OfficeRadiusMeters: radiusMeters,
	}
}

type serviceFixture struct {
	svc            attendance.AttendanceService
	attendanceRepo *fakeAttendanceRepo
	permissionRepo *fakePermissionRepo
	userRepo       *fakeUserRepo
	hub            *sse.Hub
}

func newServiceFixture(cfg config.AttendanceConfig, users ...user.User) *serviceFixture {
	attendanceRepo := newFakeAttendanceRepo()
	permissionRepo := newFakePermissionRepo()
	userRepo := newFakeUserRepo(users...)
	hub := sse.NewHub()

	return &serviceFixture{
		svc:            NewAttendanceService(attendanceRepo, permissionRepo, userRepo, hub, cfg),
		attendanceRepo: attendanceRepo,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		hub:            hub,
	}
}

// freezeClock pins the service's clock so threshold and duration boundaries
// can be asserted exactly.
func freezeClock(f *serviceFixture, at time.Time) {
	f.svc.(*AttendanceServiceImpl).now = func() time.Time { return at }
}

func seedOpenSession(f *serviceFixture, userID string, checkInAgo time.Duration) {
	now := dateutil.NowWIB()
	checkIn := now.Add(-checkInAgo)
	f.attendanceRepo.records[attKey(userID, dateutil.DayOf(now))] = attendance.Attendance{
		ID:          "seeded",
		UserID:      userID,
		Date:        dateutil.DayOf(now),
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	}
}

// seedOpenSessionAt seeds a session keyed on the check-in's own day; use it
// together with freezeClock so "today" matches.
func seedOpenSessionAt(f *serviceFixture, userID string, checkIn time.Time) {
	f.attendanceRepo.records[attKey(userID, dateutil.DayOf(checkIn))] = attendance.Attendance{
		ID:          "seeded",
		UserID:      userID,
		Date:        dateutil.DayOf(checkIn),
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	}
}

func seedCompleteSession(f *serviceFixture, userID string) {
	now := dateutil.NowWIB()
	checkIn := now.Add(-9 * time.Hour)
	checkOut := now.Add(-30 * time.Minute)
	f.attendanceRepo.records[attKey(userID, dateutil.DayOf(now))] = attendance.Attendance{
		ID:           "seeded",
		UserID:       userID,
		Date:         dateutil.DayOf(now),
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       attendance.StatusPresent,
	}
}

// ===== CHECK-IN TESTS =====

func TestCheckIn_Success(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0), user.User{ID: "user-1", Name: "Budi", Email: "budi@example.com", Role: user.RoleUser})
	freezeClock(f, time.Date(2024, 1, 10, 7, 30, 0, 0, dateutil.WIB))

	resp, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", resp.UserID)
	assert.NotNil(t, resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, "2024-01-10", resp.Date)
	assert.Equal(t, "0j 0m", resp.WorkHours)
}

func TestCheckIn_LateThresholdBoundary(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		clock string
		want  string
	}{
		{"one second before threshold", "07:59:59", attendance.StatusPresent},
		{"exactly at threshold", "08:00:00", attendance.StatusPresent},
		{"one second after threshold", "08:00:01", attendance.StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceFixture(testConfig(0))
			at, err := time.ParseInLocation("2006-01-02 15:04:05", "2024-01-10 "+tc.clock, dateutil.WIB)
			require.NoError(t, err)
			freezeClock(f, at)

			resp, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
				UserID:    "user-1",
				Latitude:  officeLat,
				Longitude: officeLng,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.Status)
		})
	}
}

func TestCheckIn_InvalidCoordinates(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  91,
		Longitude: 200,
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	details := validationErrs.ToMap()
	assert.Contains(t, details, "latitude")
	assert.Contains(t, details, "longitude")
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedOpenSession(f, "user-1", time.Hour)

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_DayAlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedCompleteSession(f, "user-1")

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	assert.ErrorIs(t, err, attendance.ErrAttendanceCompleted)
}

func TestCheckIn_BlockedByPermission(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))

	today := dateutil.DayOf(dateutil.NowWIB())
	f.permissionRepo.records[attKey("user-1", today)] = permission.Permission{
		ID:     "perm-1",
		UserID: "user-1",
		Date:   today,
		Type:   permission.TypeSakit,
		Status: permission.StatusApproved,
	}

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	assert.ErrorIs(t, err, attendance.ErrPermissionExistsToday)
}

func TestCheckIn_OutsideOfficeRadius(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(100))

	// Bandung is ~120km from the Jakarta office
	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  -6.9175,
		Longitude: 107.6191,
	})

	assert.ErrorIs(t, err, attendance.ErrOutsideOfficeRadius)
}

func TestCheckIn_InsideOfficeRadius(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(100))

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	assert.NoError(t, err)
}

func TestCheckIn_ZeroRadiusDisablesGeofence(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  -6.9175,
		Longitude: 107.6191,
	})

	assert.NoError(t, err)
}

func TestCheckIn_PublishesMonitoringEvent(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0), user.User{ID: "user-1", Name: "Budi", Email: "budi@example.com", Role: user.RoleUser})

	events, unsubscribe := f.hub.Subscribe(MonitoringTopic)
	defer unsubscribe()

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "checkin", event.Event)
		data, ok := event.Data.(attendance.Event)
		require.True(t, ok)
		assert.Equal(t, "user-1", data.UserID)
		assert.Equal(t, "Budi", data.UserName)
	case <-time.After(time.Second):
		t.Fatal("expected a checkin event on the monitoring topic")
	}
}

// ===== CHECK-OUT TESTS =====

func TestCheckOut_NotCheckedIn(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))

	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_AlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedCompleteSession(f, "user-1")

	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	assert.ErrorIs(t, err, attendance.ErrAttendanceCompleted)
}

func TestCheckOut_BeforeMinimumDuration(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedOpenSession(f, "user-1", time.Hour)

	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	var minDurationErr *attendance.MinimumDurationError
	require.True(t, errors.As(err, &minDurationErr))
	assert.Equal(t, 8*time.Hour, minDurationErr.Minimum)
	// Checked in an hour ago, so roughly seven hours remain
	assert.InDelta(t, float64(7*time.Hour), float64(minDurationErr.Remaining), float64(time.Minute))
}

func TestCheckOut_MinimumDurationBoundary(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(0)
	cfg.MinWorkDuration = 8*time.Hour + 30*time.Second

	checkIn := time.Date(2024, 1, 10, 8, 0, 0, 0, dateutil.WIB)
	req := attendance.CheckOutRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	}

	t.Run("one second short", func(t *testing.T) {
		f := newServiceFixture(cfg)
		seedOpenSessionAt(f, "user-1", checkIn)
		freezeClock(f, checkIn.Add(8*time.Hour+29*time.Second))

		_, err := f.svc.CheckOut(ctx, req)

		var minDurationErr *attendance.MinimumDurationError
		require.True(t, errors.As(err, &minDurationErr))
		assert.Equal(t, cfg.MinWorkDuration, minDurationErr.Minimum)
		assert.Equal(t, time.Second, minDurationErr.Remaining)
	})

	t.Run("exactly at minimum", func(t *testing.T) {
		f := newServiceFixture(cfg)
		seedOpenSessionAt(f, "user-1", checkIn)
		freezeClock(f, checkIn.Add(8*time.Hour+30*time.Second))

		resp, err := f.svc.CheckOut(ctx, req)
		require.NoError(t, err)
		assert.NotNil(t, resp.CheckOutTime)
	})
}

func TestCheckOut_Success(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedOpenSession(f, "user-1", 9*time.Hour)

	resp, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "9j 0m", resp.WorkHours)

	// The stored record is now terminal
	stored, err := f.attendanceRepo.GetByUserAndDate(ctx, "user-1", dateutil.DayOf(dateutil.NowWIB()))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsComplete())
}

func TestCheckOut_PublishesMonitoringEvent(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0), user.User{ID: "user-1", Name: "Budi", Email: "budi@example.com", Role: user.RoleUser})
	seedOpenSession(f, "user-1", 9*time.Hour)

	events, unsubscribe := f.hub.Subscribe(MonitoringTopic)
	defer unsubscribe()

	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{
		UserID:    "user-1",
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "checkout", event.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a checkout event on the monitoring topic")
	}
}

// ===== TODAY / HISTORY TESTS =====

func TestToday_NoRecord(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))

	resp, err := f.svc.Today(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, resp.Attendance)
}

func TestToday_WithOpenSession(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedOpenSession(f, "user-1", time.Hour)

	resp, err := f.svc.Today(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, resp.Attendance)
	assert.NotNil(t, resp.Attendance.CheckInTime)
	assert.Nil(t, resp.Attendance.CheckOutTime)
}

func TestHistory_LimitClamping(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))

	cases := []struct {
		requested int
		effective int
	}{
		{0, defaultHistoryLimit},
		{-5, defaultHistoryLimit},
		{10, 10},
		{500, maxHistoryLimit},
	}
	for _, c := range cases {
		_, err := f.svc.History(ctx, "user-1", attendance.HistoryFilter{Limit: c.requested})
		require.NoError(t, err)
		assert.Equal(t, c.effective, f.attendanceRepo.lastLimit, "requested limit %d", c.requested)
	}
}

func TestHasRecordOnDate(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0))
	seedOpenSession(f, "user-1", time.Hour)

	today := dateutil.DayKey(dateutil.NowWIB())
	has, err := f.svc.HasRecordOnDate(ctx, "user-1", today)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = f.svc.HasRecordOnDate(ctx, "user-1", "2020-01-01")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = f.svc.HasRecordOnDate(ctx, "user-1", "not-a-date")
	assert.Error(t, err)
}

// ===== MONITORING TESTS =====

func TestMonitoring_MixedStatuses(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(testConfig(0),
		user.User{ID: "user-1", Name: "Budi", Email: "budi@example.com", Role: user.RoleUser},
		user.User{ID: "user-2", Name: "Siti", Email: "siti@example.com", Role: user.RoleUser},
		user.User{ID: "user-3", Name: "Andi", Email: "andi@example.com", Role: user.RoleUser},
		user.User{ID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin},
	)
	seedOpenSession(f, "user-1", 2*time.Hour)
	seedCompleteSession(f, "user-2")

	rows, err := f.svc.Monitoring(ctx)
	require.NoError(t, err)

	// Admins are not part of the monitoring view
	require.Len(t, rows, 3)

	byUser := make(map[string]attendance.MonitoringRow, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row
	}

	open := byUser["user-1"]
	assert.Equal(t, attendance.StatusPresent, open.Status)
	assert.NotNil(t, open.CheckInTime)
	assert.Nil(t, open.CheckOutTime)
	assert.Contains(t, open.WorkHours, "(berjalan)")

	complete := byUser["user-2"]
	assert.True(t, complete.CheckOutTime != nil)
	assert.Equal(t, "8j 30m", complete.WorkHours)

	absent := byUser["user-3"]
	assert.Equal(t, "absent", absent.Status)
	assert.Nil(t, absent.CheckInTime)
	assert.Equal(t, "-", absent.WorkHours)
}
