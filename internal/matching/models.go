// internal/matching/models.go
// Read models and the match record for the recommendation pipeline
// and the bidirectional confirmation workflow.

package matching

import (
	"time"
)

// Kind is the relationship stage of a match record.
type Kind string

const (
	KindNone    Kind = "NONE"
	KindLike    Kind = "LIKE"
	KindRequest Kind = "REQUEST"
)

// Status is both the confirmation outcome of a match and the
// per-participant response state.
type Status string

const (
	StatusNone     Status = "NONE"
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// ProfileSnapshot is an immutable, denormalized view of a user's profile
// used only for filtering and scoring. A new snapshot replaces, never
// mutates, a cached entry.
type ProfileSnapshot struct {
	UserID            int64     `json:"user_id" db:"user_id"`
	Name              string    `json:"name" db:"name"`
	Email             string    `json:"email" db:"email"`
	Gender            string    `json:"gender" db:"gender"`
	BirthDate         time.Time `json:"birth_date" db:"birth_date"`
	University        string    `json:"university" db:"university"`
	StudentVerified   bool      `json:"student_verified" db:"student_verified"`
	MBTI              string    `json:"mbti" db:"mbti"`
	SleepTime         int       `json:"sleep_time" db:"sleep_time"`
	CleaningFrequency int       `json:"cleaning_frequency" db:"cleaning_frequency"`
	HygieneLevel      int       `json:"hygiene_level" db:"hygiene_level"`
	NoiseSensitivity  int       `json:"noise_sensitivity" db:"noise_sensitivity"`
	DrinkingFrequency int       `json:"drinking_frequency" db:"drinking_frequency"`
	GuestFrequency    int       `json:"guest_frequency" db:"guest_frequency"`
	IsSmoker          bool      `json:"is_smoker" db:"is_smoker"`
	IsPetAllowed      bool      `json:"is_pet_allowed" db:"is_pet_allowed"`
	IsSnoring         bool      `json:"is_snoring" db:"is_snoring"`
	PreferredAgeGap   int       `json:"preferred_age_gap" db:"preferred_age_gap"`
	StartUseDate      time.Time `json:"start_use_date" db:"start_use_date"`
	EndUseDate        time.Time `json:"end_use_date" db:"end_use_date"`
	MatchingEnabled   bool      `json:"matching_enabled" db:"matching_enabled"`
}

// UserInfo is the minimal user-row view the matching flows need about a
// requester who may not have submitted a room profile yet.
type UserInfo struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Gender     string `json:"gender" db:"gender"`
	University string `json:"university" db:"university"`
}

// Preference is the matching-side read model of a user's desired values.
type Preference struct {
	UserID            int64     `json:"user_id" db:"user_id"`
	SleepTime         int       `json:"sleep_time" db:"sleep_time"`
	CleaningFrequency int       `json:"cleaning_frequency" db:"cleaning_frequency"`
	HygieneLevel      int       `json:"hygiene_level" db:"hygiene_level"`
	NoiseSensitivity  int       `json:"noise_sensitivity" db:"noise_sensitivity"`
	DrinkingFrequency int       `json:"drinking_frequency" db:"drinking_frequency"`
	GuestFrequency    int       `json:"guest_frequency" db:"guest_frequency"`
	IsSmoker          bool      `json:"is_smoker" db:"is_smoker"`
	IsPetAllowed      bool      `json:"is_pet_allowed" db:"is_pet_allowed"`
	IsSnoring         bool      `json:"is_snoring" db:"is_snoring"`
	PreferredAgeGap   int       `json:"preferred_age_gap" db:"preferred_age_gap"`
	StartDate         time.Time `json:"start_date" db:"start_date"`
	EndDate           time.Time `json:"end_date" db:"end_date"`
}

// Match records the relationship between two users. SenderID is whoever
// caused the current record state (the like sender, then on mutual
// promotion the user who completed the pair). UserLo/UserHi is the
// canonical unordered pair: at most one record exists per pair.
type Match struct {
	ID             int64      `json:"id" db:"id"`
	SenderID       int64      `json:"sender_id" db:"sender_id"`
	ReceiverID     int64      `json:"receiver_id" db:"receiver_id"`
	UserLo         int64      `json:"-" db:"user_lo"`
	UserHi         int64      `json:"-" db:"user_hi"`
	Kind           Kind       `json:"match_type" db:"match_type"`
	Outcome        Status     `json:"match_status" db:"match_status"`
	SenderResponse Status     `json:"sender_response" db:"sender_response"`
	ReceiverResp   Status     `json:"receiver_response" db:"receiver_response"`
	Score          float64    `json:"preference_score" db:"preference_score"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty" db:"confirmed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// HasUser reports whether the given user participates in this match.
func (m Match) HasUser(userID int64) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// PartnerOf returns the other participant's id, or 0 for non-participants.
func (m Match) PartnerOf(userID int64) int64 {
	switch userID {
	case m.SenderID:
		return m.ReceiverID
	case m.ReceiverID:
		return m.SenderID
	}
	return 0
}

// PairKey returns the canonical "lo:hi" key for two user ids.
func PairKey(a, b int64) (lo, hi int64) {
	if a < b {
		return a, b
	}
	return b, a
}
