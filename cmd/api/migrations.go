package main

import "github.com/jmoiron/sqlx"

// runMigrations applies the schema idempotently on startup.
func runMigrations(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			gender VARCHAR(10) NOT NULL,
			birth_date DATE NOT NULL,
			university VARCHAR(255) NOT NULL DEFAULT '',
			student_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			sleep_time SMALLINT NOT NULL,
			cleaning_frequency SMALLINT NOT NULL,
			hygiene_level SMALLINT NOT NULL,
			noise_sensitivity SMALLINT NOT NULL,
			drinking_frequency SMALLINT NOT NULL,
			guest_frequency SMALLINT NOT NULL,
			is_smoker BOOLEAN NOT NULL DEFAULT FALSE,
			is_pet_allowed BOOLEAN NOT NULL DEFAULT FALSE,
			is_snoring BOOLEAN NOT NULL DEFAULT FALSE,
			preferred_age_gap SMALLINT NOT NULL DEFAULT 0,
			mbti VARCHAR(4) NOT NULL DEFAULT '',
			start_use_date DATE NOT NULL,
			end_use_date DATE NOT NULL,
			matching_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS match_preferences (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			sleep_time SMALLINT NOT NULL,
			cleaning_frequency SMALLINT NOT NULL,
			hygiene_level SMALLINT NOT NULL,
			noise_sensitivity SMALLINT NOT NULL,
			drinking_frequency SMALLINT NOT NULL,
			guest_frequency SMALLINT NOT NULL,
			is_smoker BOOLEAN NOT NULL DEFAULT FALSE,
			is_pet_allowed BOOLEAN NOT NULL DEFAULT FALSE,
			is_snoring BOOLEAN NOT NULL DEFAULT FALSE,
			preferred_age_gap SMALLINT NOT NULL DEFAULT 0,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_lo BIGINT NOT NULL,
			user_hi BIGINT NOT NULL,
			match_type VARCHAR(10) NOT NULL,
			match_status VARCHAR(10) NOT NULL,
			sender_response VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			receiver_response VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			preference_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			confirmed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT matches_pair_unique UNIQUE (user_lo, user_hi),
			CONSTRAINT matches_pair_ordered CHECK (user_lo < user_hi)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_matches_user_lo ON matches(user_lo)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user_hi ON matches(user_hi)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(match_status)`,

		`CREATE TABLE IF NOT EXISTS chatrooms (
			id BIGSERIAL PRIMARY KEY,
			user_lo BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_hi BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT chatrooms_pair_unique UNIQUE (user_lo, user_hi),
			CONSTRAINT chatrooms_pair_ordered CHECK (user_lo < user_hi)
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			sender_name VARCHAR(100) NOT NULL DEFAULT '',
			kind VARCHAR(20) NOT NULL,
			message TEXT NOT NULL,
			chatroom_id BIGINT REFERENCES chatrooms(id) ON DELETE SET NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, read)`,

		`CREATE TABLE IF NOT EXISTS verification_codes (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			code VARCHAR(6) NOT NULL,
			attempts SMALLINT NOT NULL DEFAULT 0,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_verification_codes_user ON verification_codes(user_id, expires_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
