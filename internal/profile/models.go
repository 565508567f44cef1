// internal/profile/models.go
// Lifestyle profile and match preference records.
// Coded attributes use a 1-5 scale throughout (5 = most / earliest / strictest).

package profile

import (
	"time"
)

// RoomProfile holds a user's actual lifestyle attributes used for matching.
type RoomProfile struct {
	ID                int64     `json:"id" db:"id"`
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
	MBTI              string    `json:"mbti" db:"mbti"`
	StartUseDate      time.Time `json:"start_use_date" db:"start_use_date"`
	EndUseDate        time.Time `json:"end_use_date" db:"end_use_date"`
	MatchingEnabled   bool      `json:"matching_enabled" db:"matching_enabled"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// MatchPreference holds the same coded attributes as desired values.
// Its existence gates both appearing in and receiving recommendations.
type MatchPreference struct {
	ID                int64     `json:"id" db:"id"`
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
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertProfileRequest creates or replaces the caller's lifestyle profile
type UpsertProfileRequest struct {
	SleepTime         int    `json:"sleep_time" validate:"required,min=1,max=5"`
	CleaningFrequency int    `json:"cleaning_frequency" validate:"required,min=1,max=5"`
	HygieneLevel      int    `json:"hygiene_level" validate:"required,min=1,max=5"`
	NoiseSensitivity  int    `json:"noise_sensitivity" validate:"required,min=1,max=5"`
	DrinkingFrequency int    `json:"drinking_frequency" validate:"required,min=1,max=5"`
	GuestFrequency    int    `json:"guest_frequency" validate:"required,min=1,max=5"`
	IsSmoker          bool   `json:"is_smoker"`
	IsPetAllowed      bool   `json:"is_pet_allowed"`
	IsSnoring         bool   `json:"is_snoring"`
	PreferredAgeGap   int    `json:"preferred_age_gap" validate:"required,min=1,max=5"`
	MBTI              string `json:"mbti" validate:"required,len=4"`
	StartUseDate      string `json:"start_use_date" validate:"required"` // YYYY-MM-DD
	EndUseDate        string `json:"end_use_date" validate:"required"`
	MatchingEnabled   bool   `json:"matching_enabled"`
}

// UpsertPreferenceRequest creates or updates the caller's match preference
type UpsertPreferenceRequest struct {
	SleepTime         int    `json:"sleep_time" validate:"required,min=1,max=5"`
	CleaningFrequency int    `json:"cleaning_frequency" validate:"required,min=1,max=5"`
	HygieneLevel      int    `json:"hygiene_level" validate:"required,min=1,max=5"`
	NoiseSensitivity  int    `json:"noise_sensitivity" validate:"required,min=1,max=5"`
	DrinkingFrequency int    `json:"drinking_frequency" validate:"required,min=1,max=5"`
	GuestFrequency    int    `json:"guest_frequency" validate:"required,min=1,max=5"`
	IsSmoker          bool   `json:"is_smoker"`
	IsPetAllowed      bool   `json:"is_pet_allowed"`
	IsSnoring         bool   `json:"is_snoring"`
	PreferredAgeGap   int    `json:"preferred_age_gap" validate:"required,min=1,max=5"`
	StartDate         string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate           string `json:"end_date" validate:"required"`
}

// SetMatchingEnabledRequest toggles visibility in recommendations
type SetMatchingEnabledRequest struct {
	MatchingEnabled *bool `json:"matching_enabled" validate:"required"`
}
