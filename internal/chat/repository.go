package chat

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRoomNotFound = errors.New("chat room not found")

type Repository interface {
	UpsertRoom(ctx context.Context, userLo, userHi int64) (*Room, error)
	GetRoomByID(ctx context.Context, id int64) (*Room, error)
	ListRoomsForUser(ctx context.Context, userID int64) ([]Room, error)
	CloseRoom(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// UpsertRoom creates the pair's room or reactivates it when it already
// exists, possibly closed.
func (r *postgresRepository) UpsertRoom(ctx context.Context, userLo, userHi int64) (*Room, error) {
	query := `
		INSERT INTO chatrooms (user_lo, user_hi, active)
		VALUES ($1, $2, true)
		ON CONFLICT (user_lo, user_hi) DO UPDATE SET
			active = true,
			updated_at = NOW()
		RETURNING *
	`
	var room Room
	if err := r.db.GetContext(ctx, &room, query, userLo, userHi); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *postgresRepository) GetRoomByID(ctx context.Context, id int64) (*Room, error) {
	var room Room
	err := r.db.GetContext(ctx, &room, `SELECT * FROM chatrooms WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *postgresRepository) ListRoomsForUser(ctx context.Context, userID int64) ([]Room, error) {
	rooms := []Room{}
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT * FROM chatrooms WHERE user_lo = $1 OR user_hi = $1 ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *postgresRepository) CloseRoom(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chatrooms SET active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
