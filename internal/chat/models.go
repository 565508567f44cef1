package chat

import "time"

// Room is a chat room between a confirmed pair. Exactly one row exists
// per unordered pair; a closed room is reactivated instead of recreated.
type Room struct {
	ID        int64     `json:"id" db:"id"`
	UserLo    int64     `json:"-" db:"user_lo"`
	UserHi    int64     `json:"-" db:"user_hi"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasUser reports whether the user participates in the room.
func (r Room) HasUser(userID int64) bool {
	return r.UserLo == userID || r.UserHi == userID
}

// PartnerOf returns the other participant, or 0 for non-participants.
func (r Room) PartnerOf(userID int64) int64 {
	switch userID {
	case r.UserLo:
		return r.UserHi
	case r.UserHi:
		return r.UserLo
	}
	return 0
}

// RoomView is a room as presented to one participant.
type RoomView struct {
	RoomID    int64     `json:"room_id"`
	PartnerID int64     `json:"partner_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
