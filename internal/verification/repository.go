package verification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCodeNotFound = errors.New("no active verification code")

type Repository interface {
	CreateCode(ctx context.Context, c *Code) error
	// GetActiveCode returns the newest unverified, unexpired code.
	GetActiveCode(ctx context.Context, userID int64) (*Code, error)
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	MarkVerified(ctx context.Context, id int64) error
	InvalidateCodes(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateCode(ctx context.Context, c *Code) error {
	query := `
		INSERT INTO verification_codes (user_id, code, attempts, verified, expires_at)
		VALUES ($1, $2, 0, false, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query, c.UserID, c.Code, c.ExpiresAt).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *postgresRepository) GetActiveCode(ctx context.Context, userID int64) (*Code, error) {
	var c Code
	err := r.db.GetContext(ctx, &c, `
		SELECT * FROM verification_codes
		WHERE user_id = $1 AND verified = false AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	var attempts int
	err := r.db.GetContext(ctx, &attempts, `
		UPDATE verification_codes SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`, id)
	return attempts, err
}

func (r *postgresRepository) MarkVerified(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE verification_codes SET verified = true WHERE id = $1`, id)
	return err
}

// InvalidateCodes expires every outstanding code for a user so a fresh
// issue supersedes them.
func (r *postgresRepository) InvalidateCodes(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE verification_codes SET expires_at = NOW()
		WHERE user_id = $1 AND verified = false AND expires_at > NOW()
	`, userID)
	return err
}
