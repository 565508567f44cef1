package notification

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ExistsFromSender(ctx context.Context, userID, senderID int64, kind Kind) (bool, error)
	DeleteFromSender(ctx context.Context, userID, senderID int64, kind Kind) error
	ListForUser(ctx context.Context, userID int64, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (user_id, sender_id, sender_name, kind, message, chatroom_id, read)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query, n.UserID, n.SenderID, n.SenderName, n.Kind, n.Message, n.ChatroomID).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *postgresRepository) ExistsFromSender(ctx context.Context, userID, senderID int64, kind Kind) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND sender_id = $2 AND kind = $3
		)`, userID, senderID, kind)
	return exists, err
}

func (r *postgresRepository) DeleteFromSender(ctx context.Context, userID, senderID int64, kind Kind) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1 AND sender_id = $2 AND kind = $3`,
		userID, senderID, kind)
	return err
}

func (r *postgresRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	notifications := []Notification{}
	err := r.db.SelectContext(ctx, &notifications,
		`SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *postgresRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`, userID)
	return err
}

func (r *postgresRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`, userID)
	return count, err
}
