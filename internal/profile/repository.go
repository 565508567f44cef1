package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	UpsertProfile(ctx context.Context, p *RoomProfile) error
	GetProfileByUserID(ctx context.Context, userID int64) (*RoomProfile, error)
	SetMatchingEnabled(ctx context.Context, userID int64, enabled bool) error

	UpsertPreference(ctx context.Context, p *MatchPreference) error
	GetPreferenceByUserID(ctx context.Context, userID int64) (*MatchPreference, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, p *RoomProfile) error {
	query := `
		INSERT INTO user_profiles (
			user_id, sleep_time, cleaning_frequency, hygiene_level, noise_sensitivity,
			drinking_frequency, guest_frequency, is_smoker, is_pet_allowed, is_snoring,
			preferred_age_gap, mbti, start_use_date, end_use_date, matching_enabled
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			sleep_time = EXCLUDED.sleep_time,
			cleaning_frequency = EXCLUDED.cleaning_frequency,
			hygiene_level = EXCLUDED.hygiene_level,
			noise_sensitivity = EXCLUDED.noise_sensitivity,
			drinking_frequency = EXCLUDED.drinking_frequency,
			guest_frequency = EXCLUDED.guest_frequency,
			is_smoker = EXCLUDED.is_smoker,
			is_pet_allowed = EXCLUDED.is_pet_allowed,
			is_snoring = EXCLUDED.is_snoring,
			preferred_age_gap = EXCLUDED.preferred_age_gap,
			mbti = EXCLUDED.mbti,
			start_use_date = EXCLUDED.start_use_date,
			end_use_date = EXCLUDED.end_use_date,
			matching_enabled = EXCLUDED.matching_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.SleepTime, p.CleaningFrequency, p.HygieneLevel, p.NoiseSensitivity,
		p.DrinkingFrequency, p.GuestFrequency, p.IsSmoker, p.IsPetAllowed, p.IsSnoring,
		p.PreferredAgeGap, p.MBTI, p.StartUseDate, p.EndUseDate, p.MatchingEnabled,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*RoomProfile, error) {
	var p RoomProfile
	err := r.db.GetContext(ctx, &p, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) SetMatchingEnabled(ctx context.Context, userID int64, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET matching_enabled = $1, updated_at = NOW() WHERE user_id = $2`,
		enabled, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) UpsertPreference(ctx context.Context, p *MatchPreference) error {
	query := `
		INSERT INTO match_preferences (
			user_id, sleep_time, cleaning_frequency, hygiene_level, noise_sensitivity,
			drinking_frequency, guest_frequency, is_smoker, is_pet_allowed, is_snoring,
			preferred_age_gap, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			sleep_time = EXCLUDED.sleep_time,
			cleaning_frequency = EXCLUDED.cleaning_frequency,
			hygiene_level = EXCLUDED.hygiene_level,
			noise_sensitivity = EXCLUDED.noise_sensitivity,
			drinking_frequency = EXCLUDED.drinking_frequency,
			guest_frequency = EXCLUDED.guest_frequency,
			is_smoker = EXCLUDED.is_smoker,
			is_pet_allowed = EXCLUDED.is_pet_allowed,
			is_snoring = EXCLUDED.is_snoring,
			preferred_age_gap = EXCLUDED.preferred_age_gap,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.SleepTime, p.CleaningFrequency, p.HygieneLevel, p.NoiseSensitivity,
		p.DrinkingFrequency, p.GuestFrequency, p.IsSmoker, p.IsPetAllowed, p.IsSnoring,
		p.PreferredAgeGap, p.StartDate, p.EndDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetPreferenceByUserID(ctx context.Context, userID int64) (*MatchPreference, error) {
	var p MatchPreference
	err := r.db.GetContext(ctx, &p, `SELECT * FROM match_preferences WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPreferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
