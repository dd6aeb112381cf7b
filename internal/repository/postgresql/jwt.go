package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// JWTRepository persists refresh tokens so revocation survives restarts.
// Only a SHA256 hash of the token is stored.
type JWTRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

type jwtRepositoryImpl struct {
	db *database.DB
}

// NewJWTRepository creates a new instance of JWTRepository.
func NewJWTRepository(db *database.DB) JWTRepository {
	return &jwtRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func (j *jwtRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (j *jwtRepositoryImpl) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	q := GetQuerier(ctx, j.db)
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := q.Exec(ctx, query, userID, j.hashToken(token), time.Unix(expiresAt, 0).UTC())
	return err
}

// IsRefreshTokenRevoked reports whether a token is revoked or expired. An
// unknown token counts as revoked: only tokens this server issued and
// recorded are refreshable.
func (j *jwtRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`

	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, j.hashToken(token)).Scan(&revokedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, err
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return true, nil
	}
	return false, nil
}

func (j *jwtRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, j.hashToken(token))
	return err
}

// RevokeAllForUser revokes every live refresh token a user holds. Called
// when the account is deleted.
func (j *jwtRepositoryImpl) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, userID)
	return err
}

// DeleteExpiredTokens removes tokens past their expiry; run from the cron
// scheduler.
func (j *jwtRepositoryImpl) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, j.db)

	tag, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
