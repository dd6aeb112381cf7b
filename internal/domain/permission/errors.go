package permission

import "errors"

// Permission domain errors
var (
	ErrAlreadyRequested      = errors.New("kamu telah mengisi keterangan sebelumnya")
	ErrAttendanceExistsToday = errors.New("anda sudah melakukan absen hari ini")
	ErrPermissionNotFound    = errors.New("permission record not found")
)
