package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/permission"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) permission.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

const permissionColumns = `
	p.id, p.user_id, p.date, p.type, p.note, p.status, p.created_at, p.updated_at,
	u.name, u.email
`

func scanPermission(row pgx.Row) (permission.Permission, error) {
	var p permission.Permission
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Date,
		&p.Type,
		&p.Note,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.UserName,
		&p.UserEmail,
	)
	return p, err
}

// Create implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) Create(ctx context.Context, perm permission.Permission) (permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO permissions (id, user_id, date, type, note, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT ` + permissionColumns + `
		FROM inserted p
		JOIN users u ON u.id = p.user_id
	`

	created, err := scanPermission(q.QueryRow(ctx, query,
		uuid.NewString(),
		perm.UserID,
		perm.Date,
		perm.Type,
		perm.Note,
		perm.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return permission.Permission{}, permission.ErrAlreadyRequested
		}
		return permission.Permission{}, err
	}

	return created, nil
}

// GetByUserAndDate implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + permissionColumns + `
		FROM permissions p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND p.date = $2
	`

	found, err := scanPermission(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// GetByID implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) GetByID(ctx context.Context, id string) (permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + permissionColumns + `
		FROM permissions p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	found, err := scanPermission(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return permission.Permission{}, permission.ErrPermissionNotFound
		}
		return permission.Permission{}, err
	}

	return found, nil
}

// ListByDateRange implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + permissionColumns + `
		FROM permissions p
		JOIN users u ON u.id = p.user_id
		WHERE p.date >= $1 AND p.date <= $2
	`
	args := []interface{}{start, end}

	if userID != "" {
		query += ` AND p.user_id = $3`
		args = append(args, userID)
	}
	query += ` ORDER BY p.date, u.name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []permission.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// ListByUser implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + permissionColumns + `
		FROM permissions p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []permission.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// UpdateStatus implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) UpdateStatus(ctx context.Context, id string, status string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE permissions
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return permission.ErrPermissionNotFound
	}
	return nil
}
