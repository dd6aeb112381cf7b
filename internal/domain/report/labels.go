package report

// Canonical enum-to-label tables. Every surface that renders a status
// (detail view, summary view, CSV, report document) goes through these
// maps so the wording cannot drift between call sites.

var statusLabels = map[string]string{
	StatusPresent:    "Hadir",
	StatusLate:       "Terlambat",
	StatusPermission: "Izin/Sakit",
	StatusHoliday:    "Libur Nasional",
	StatusWeekend:    "Akhir Pekan",
	StatusAbsent:     "Tanpa Keterangan",
}

var permissionTypeLabels = map[string]string{
	"izin":  "Izin",
	"sakit": "Sakit",
	"libur": "Libur",
}

var permissionStatusLabels = map[string]string{
	"approved": "Disetujui",
	"pending":  "Menunggu",
	"rejected": "Ditolak",
}

// StatusLabel returns the localized display label for a reconciled status.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// PermissionTypeLabel returns the localized label for a permission type,
// "-" when absent.
func PermissionTypeLabel(permType *string) string {
	if permType == nil {
		return "-"
	}
	if label, ok := permissionTypeLabels[*permType]; ok {
		return label
	}
	return *permType
}

// PermissionStatusLabel returns the localized label for a permission
// approval status, "-" when absent.
func PermissionStatusLabel(status *string) string {
	if status == nil {
		return "-"
	}
	if label, ok := permissionStatusLabels[*status]; ok {
		return label
	}
	return *status
}
