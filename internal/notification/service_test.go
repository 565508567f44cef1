package notification

import (
	"context"
	"testing"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

type memRepo struct {
	nextID int64
	items  []Notification
}

func (r *memRepo) Create(ctx context.Context, n *Notification) error {
	r.nextID++
	n.ID = r.nextID
	r.items = append(r.items, *n)
	return nil
}

func (r *memRepo) ExistsFromSender(ctx context.Context, userID, senderID int64, kind Kind) (bool, error) {
	for _, n := range r.items {
		if n.UserID == userID && n.SenderID == senderID && n.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) DeleteFromSender(ctx context.Context, userID, senderID int64, kind Kind) error {
	kept := r.items[:0]
	for _, n := range r.items {
		if n.UserID == userID && n.SenderID == senderID && n.Kind == kind {
			continue
		}
		kept = append(kept, n)
	}
	r.items = kept
	return nil
}

func (r *memRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	var out []Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memRepo) MarkRead(ctx context.Context, userID, notificationID int64) error {
	for i, n := range r.items {
		if n.ID == notificationID && n.UserID == userID {
			r.items[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *memRepo) MarkAllRead(ctx context.Context, userID int64) error {
	for i, n := range r.items {
		if n.UserID == userID {
			r.items[i].Read = true
		}
	}
	return nil
}

func (r *memRepo) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) ofKind(userID int64, kind Kind) []Notification {
	var out []Notification
	for _, n := range r.items {
		if n.UserID == userID && n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

func TestLikeReceivedDeduplicates(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	if err := svc.LikeReceived(ctx, 1, "Jisoo", 2); err != nil {
		t.Fatalf("LikeReceived: %v", err)
	}
	if err := svc.LikeReceived(ctx, 1, "Jisoo", 2); err != nil {
		t.Fatalf("second LikeReceived: %v", err)
	}

	likes := repo.ofKind(2, KindLike)
	if len(likes) != 1 {
		t.Fatalf("got %d like notifications, want 1", len(likes))
	}
	if likes[0].SenderName != "Jisoo" {
		t.Errorf("SenderName = %q, want Jisoo", likes[0].SenderName)
	}
	if likes[0].SenderID != 1 {
		t.Errorf("SenderID = %d, want 1", likes[0].SenderID)
	}
}

func TestLikeCanceledReplacesLike(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	if err := svc.LikeReceived(ctx, 1, "Jisoo", 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.LikeCanceled(ctx, 1, "Jisoo", 2); err != nil {
		t.Fatalf("LikeCanceled: %v", err)
	}

	if got := repo.ofKind(2, KindLike); len(got) != 0 {
		t.Errorf("like notification must be gone after cancel, got %d", len(got))
	}
	canceled := repo.ofKind(2, KindLikeCanceled)
	if len(canceled) != 1 {
		t.Fatalf("got %d like-canceled notifications, want 1", len(canceled))
	}
	if canceled[0].SenderName != "Jisoo" {
		t.Errorf("SenderName = %q, want Jisoo", canceled[0].SenderName)
	}

	// Liking again clears the cancellation notice.
	if err := svc.LikeReceived(ctx, 1, "Jisoo", 2); err != nil {
		t.Fatal(err)
	}
	if got := repo.ofKind(2, KindLikeCanceled); len(got) != 0 {
		t.Errorf("like-canceled notice must be cleared by a new like, got %d", len(got))
	}
	if got := repo.ofKind(2, KindLike); len(got) != 1 {
		t.Errorf("got %d like notifications after re-like, want 1", len(got))
	}
}

func TestMatchConfirmedNotifiesBothSides(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	room := int64(42)
	if err := svc.MatchConfirmed(ctx, 1, 2, "Jisoo", "Minji", &room); err != nil {
		t.Fatalf("MatchConfirmed: %v", err)
	}

	forReceiver := repo.ofKind(2, KindMatch)
	if len(forReceiver) != 1 {
		t.Fatalf("receiver got %d match notifications, want 1", len(forReceiver))
	}
	if forReceiver[0].SenderName != "Jisoo" {
		t.Errorf("receiver sees sender %q, want Jisoo", forReceiver[0].SenderName)
	}
	if forReceiver[0].ChatroomID == nil || *forReceiver[0].ChatroomID != room {
		t.Error("receiver's match notification must carry the chat room id")
	}

	forSender := repo.ofKind(1, KindMatch)
	if len(forSender) != 1 {
		t.Fatalf("sender got %d match notifications, want 1", len(forSender))
	}
	if forSender[0].SenderName != "Minji" {
		t.Errorf("sender sees partner %q, want Minji", forSender[0].SenderName)
	}
	if forSender[0].ChatroomID == nil || *forSender[0].ChatroomID != room {
		t.Error("sender's match notification must carry the chat room id")
	}
}

func TestMatchConfirmedWithoutRoom(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	// A stale cancellation notice from the earlier like round is
	// swept when the match lands.
	if err := svc.LikeCanceled(ctx, 1, "Jisoo", 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.MatchConfirmed(ctx, 1, 2, "Jisoo", "Minji", nil); err != nil {
		t.Fatalf("MatchConfirmed: %v", err)
	}

	if got := repo.ofKind(2, KindLikeCanceled); len(got) != 0 {
		t.Errorf("like-canceled notice must be cleared by the match, got %d", len(got))
	}
	forReceiver := repo.ofKind(2, KindMatch)
	if len(forReceiver) != 1 {
		t.Fatalf("receiver got %d match notifications, want 1", len(forReceiver))
	}
	if forReceiver[0].ChatroomID != nil {
		t.Error("no chat room was provisioned, ChatroomID must be empty")
	}
}
