package notification

import (
	"context"
	"fmt"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

const defaultListLimit = 50

// Service creates and serves notifications. Its LikeReceived,
// LikeCanceled and MatchConfirmed methods back the matching pipeline's
// notifier hook.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// LikeReceived notifies the receiver of a new like. A fresh like clears
// any earlier like-canceled notice from the same sender, and a
// still-standing like notification suppresses a duplicate.
func (s *Service) LikeReceived(ctx context.Context, senderID int64, senderName string, receiverID int64) error {
	if err := s.repo.DeleteFromSender(ctx, receiverID, senderID, KindLikeCanceled); err != nil {
		return fmt.Errorf("clear like-canceled notification: %w", err)
	}
	exists, err := s.repo.ExistsFromSender(ctx, receiverID, senderID, KindLike)
	if err != nil {
		return fmt.Errorf("check existing like notification: %w", err)
	}
	if exists {
		return nil
	}
	return s.repo.Create(ctx, &Notification{
		UserID:     receiverID,
		SenderID:   senderID,
		SenderName: senderName,
		Kind:       KindLike,
		Message:    fmt.Sprintf("%s likes your room profile", senderName),
	})
}

// LikeCanceled retracts the sender's like notification and leaves a
// single like-canceled notice in its place.
func (s *Service) LikeCanceled(ctx context.Context, senderID int64, senderName string, receiverID int64) error {
	if err := s.repo.DeleteFromSender(ctx, receiverID, senderID, KindLike); err != nil {
		return fmt.Errorf("delete like notification: %w", err)
	}
	exists, err := s.repo.ExistsFromSender(ctx, receiverID, senderID, KindLikeCanceled)
	if err != nil {
		return fmt.Errorf("check existing like-canceled notification: %w", err)
	}
	if exists {
		return nil
	}
	return s.repo.Create(ctx, &Notification{
		UserID:     receiverID,
		SenderID:   senderID,
		SenderName: senderName,
		Kind:       KindLikeCanceled,
		Message:    fmt.Sprintf("%s canceled their like", senderName),
	})
}

// MatchConfirmed notifies both sides of a mutual match, carrying the
// chat room opened for the pair when one could be provisioned.
func (s *Service) MatchConfirmed(ctx context.Context, senderID, receiverID int64, senderName, receiverName string, roomID *int64) error {
	if err := s.repo.DeleteFromSender(ctx, receiverID, senderID, KindLikeCanceled); err != nil {
		return fmt.Errorf("clear like-canceled notification: %w", err)
	}
	first := s.repo.Create(ctx, &Notification{
		UserID:     receiverID,
		SenderID:   senderID,
		SenderName: senderName,
		Kind:       KindMatch,
		Message:    fmt.Sprintf("You matched with %s!", senderName),
		ChatroomID: roomID,
	})
	second := s.repo.Create(ctx, &Notification{
		UserID:     senderID,
		SenderID:   receiverID,
		SenderName: receiverName,
		Kind:       KindMatch,
		Message:    fmt.Sprintf("You matched with %s!", receiverName),
		ChatroomID: roomID,
	})
	if first != nil {
		return first
	}
	return second
}

func (s *Service) List(ctx context.Context, userID int64) ([]Notification, error) {
	return s.repo.ListForUser(ctx, userID, defaultListLimit)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}
