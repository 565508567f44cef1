package matching

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrMatchNotFound is returned when no match row exists for a lookup.
var ErrMatchNotFound = errors.New("matching: match not found")

// ErrUserNotFound is returned when a referenced user row is missing.
var ErrUserNotFound = errors.New("matching: user not found")

type Repository interface {
	LoadAllSnapshots(ctx context.Context) ([]ProfileSnapshot, error)
	GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error)
	GetPreferenceByUserID(ctx context.Context, userID int64) (*Preference, error)
	PreferenceHolderIDs(ctx context.Context) (map[int64]bool, error)
	EngagedPartnerIDs(ctx context.Context, userID int64) (map[int64]bool, error)

	CreateMatch(ctx context.Context, m *Match) error
	GetMatchByID(ctx context.Context, id int64) (*Match, error)
	GetMatchByPair(ctx context.Context, userA, userB int64) (*Match, error)
	UpdateMatch(ctx context.Context, m *Match) error
	DeleteMatch(ctx context.Context, id int64) error
	ListMatchesForUser(ctx context.Context, userID int64) ([]Match, error)
	ListAcceptedMatchesForUser(ctx context.Context, userID int64) ([]Match, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// LoadAllSnapshots reads the full denormalized candidate set in one
// query; only users with a submitted room profile appear.
func (r *postgresRepository) LoadAllSnapshots(ctx context.Context) ([]ProfileSnapshot, error) {
	query := `
		SELECT
			u.id AS user_id, u.name, u.email, u.gender, u.birth_date,
			u.university, u.student_verified,
			p.mbti, p.sleep_time, p.cleaning_frequency, p.hygiene_level,
			p.noise_sensitivity, p.drinking_frequency, p.guest_frequency,
			p.is_smoker, p.is_pet_allowed, p.is_snoring, p.preferred_age_gap,
			p.start_use_date, p.end_use_date, p.matching_enabled
		FROM users u
		JOIN user_profiles p ON p.user_id = u.id
		ORDER BY u.id
	`
	snaps := []ProfileSnapshot{}
	if err := r.db.SelectContext(ctx, &snaps, query); err != nil {
		return nil, err
	}
	return snaps, nil
}

// GetUserInfo reads the user row itself, so requesters without a room
// profile still resolve.
func (r *postgresRepository) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	var u UserInfo
	err := r.db.GetContext(ctx, &u,
		`SELECT id, name, gender, university FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) GetPreferenceByUserID(ctx context.Context, userID int64) (*Preference, error) {
	query := `
		SELECT user_id, sleep_time, cleaning_frequency, hygiene_level,
			noise_sensitivity, drinking_frequency, guest_frequency,
			is_smoker, is_pet_allowed, is_snoring, preferred_age_gap,
			start_date, end_date
		FROM match_preferences
		WHERE user_id = $1
	`
	var p Preference
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PreferenceHolderIDs returns the set of users that have submitted
// matching preferences, fetched once per recommendation call.
func (r *postgresRepository) PreferenceHolderIDs(ctx context.Context) (map[int64]bool, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM match_preferences`); err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// EngagedPartnerIDs returns the users the given user already has an
// active mutual request with, meaning a REQUEST match between the pair
// whose outcome is ACCEPTED or still PENDING. Bare likes and rejected
// matches do not count.
func (r *postgresRepository) EngagedPartnerIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	var rows []struct {
		UserLo int64 `db:"user_lo"`
		UserHi int64 `db:"user_hi"`
	}
	query := `
		SELECT user_lo, user_hi FROM matches
		WHERE (user_lo = $1 OR user_hi = $1)
			AND match_type = 'REQUEST'
			AND match_status IN ('ACCEPTED', 'PENDING')
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if row.UserLo == userID {
			set[row.UserHi] = true
		} else {
			set[row.UserLo] = true
		}
	}
	return set, nil
}

func (r *postgresRepository) CreateMatch(ctx context.Context, m *Match) error {
	query := `
		INSERT INTO matches (
			sender_id, receiver_id, user_lo, user_hi, match_type, match_status,
			sender_response, receiver_response, preference_score, confirmed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(
		ctx, query,
		m.SenderID, m.ReceiverID, m.UserLo, m.UserHi, m.Kind, m.Outcome,
		m.SenderResponse, m.ReceiverResp, m.Score, m.ConfirmedAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *postgresRepository) GetMatchByID(ctx context.Context, id int64) (*Match, error) {
	var m Match
	err := r.db.GetContext(ctx, &m, `SELECT * FROM matches WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchByPair looks up the single match row between two users in
// either direction via the canonical pair columns.
func (r *postgresRepository) GetMatchByPair(ctx context.Context, userA, userB int64) (*Match, error) {
	lo, hi := PairKey(userA, userB)
	var m Match
	err := r.db.GetContext(ctx, &m,
		`SELECT * FROM matches WHERE user_lo = $1 AND user_hi = $2`, lo, hi)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepository) UpdateMatch(ctx context.Context, m *Match) error {
	query := `
		UPDATE matches SET
			sender_id = $1, receiver_id = $2, match_type = $3, match_status = $4,
			sender_response = $5, receiver_response = $6, preference_score = $7,
			confirmed_at = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		m.SenderID, m.ReceiverID, m.Kind, m.Outcome,
		m.SenderResponse, m.ReceiverResp, m.Score, m.ConfirmedAt, m.ID,
	).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchNotFound
	}
	return err
}

func (r *postgresRepository) DeleteMatch(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresRepository) ListMatchesForUser(ctx context.Context, userID int64) ([]Match, error) {
	matches := []Match{}
	err := r.db.SelectContext(ctx, &matches,
		`SELECT * FROM matches WHERE user_lo = $1 OR user_hi = $1 ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresRepository) ListAcceptedMatchesForUser(ctx context.Context, userID int64) ([]Match, error) {
	matches := []Match{}
	err := r.db.SelectContext(ctx, &matches,
		`SELECT * FROM matches
		 WHERE (user_lo = $1 OR user_hi = $1) AND match_status = 'ACCEPTED'
		 ORDER BY confirmed_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return matches, nil
}
