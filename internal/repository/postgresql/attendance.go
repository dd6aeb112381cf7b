package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.check_in_time, a.check_out_time,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.status, a.notes, a.created_at, a.updated_at,
	u.name, u.email
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.CheckInLatitude,
		&a.CheckInLongitude,
		&a.CheckOutLatitude,
		&a.CheckOutLongitude,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.UserName,
		&a.UserEmail,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO attendances (
				id, user_id, date, check_in_time,
				check_in_latitude, check_in_longitude, status, notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM inserted a
		JOIN users u ON u.id = a.user_id
	`

	created, err := scanAttendance(q.QueryRow(ctx, query,
		uuid.NewString(),
		att.UserID,
		att.Date,
		att.CheckInTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.Status,
		att.Notes,
	))
	if err != nil {
		// (user_id, date) unique constraint: the second of two concurrent
		// check-ins surfaces as a normal duplicate.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.date = $2
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			status = $5,
			notes = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckOutTime,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.Status,
		att.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date >= $1 AND a.date <= $2
	`
	args := []interface{}{start, end}

	if userID != "" {
		query += ` AND a.user_id = $3`
		args = append(args, userID)
	}
	query += ` ORDER BY a.date, u.name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
