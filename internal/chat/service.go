package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/unimate/unimate-backend/internal/common/logger"
	"github.com/unimate/unimate-backend/internal/matching"
)

var ErrNotParticipant = errors.New("user is not a participant of this room")

// Service manages chat rooms for confirmed pairs. OpenRoom backs the
// matching pipeline's room hook.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// OpenRoom ensures an active room exists for the pair and returns its
// id. Idempotent: an existing room, active or closed, comes back active.
func (s *Service) OpenRoom(ctx context.Context, userA, userB int64) (int64, error) {
	lo, hi := matching.PairKey(userA, userB)
	room, err := s.repo.UpsertRoom(ctx, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("open chat room: %w", err)
	}
	s.log.Info("chat room opened", "room_id", room.ID, "user_lo", lo, "user_hi", hi)
	return room.ID, nil
}

// ListRooms returns the user's rooms as participant views.
func (s *Service) ListRooms(ctx context.Context, userID int64) ([]RoomView, error) {
	rooms, err := s.repo.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chat rooms: %w", err)
	}
	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, RoomView{
			RoomID:    room.ID,
			PartnerID: room.PartnerOf(userID),
			Active:    room.Active,
			CreatedAt: room.CreatedAt,
		})
	}
	return views, nil
}

// GetRoom returns one room, restricted to its participants.
func (s *Service) GetRoom(ctx context.Context, userID, roomID int64) (*RoomView, error) {
	room, err := s.repo.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasUser(userID) {
		return nil, ErrNotParticipant
	}
	return &RoomView{
		RoomID:    room.ID,
		PartnerID: room.PartnerOf(userID),
		Active:    room.Active,
		CreatedAt: room.CreatedAt,
	}, nil
}

// CloseRoom deactivates a room, keeping the row for later reactivation.
func (s *Service) CloseRoom(ctx context.Context, userID, roomID int64) error {
	room, err := s.repo.GetRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasUser(userID) {
		return ErrNotParticipant
	}
	return s.repo.CloseRoom(ctx, room.ID)
}
