// internal/matching/filters.go
// Candidate eligibility filtering for recommendations. Filters run as an
// ordered short-circuit chain: first failing predicate excludes the
// candidate, no fall-through scoring.

package matching

import (
	"strings"
	"time"
)

// Filter holds the caller-supplied recommendation filters. Blank string
// means "no constraint"; an unrecognized literal matches nobody.
type Filter struct {
	SleepPattern      string
	AgeRange          string
	CleaningFrequency string
	StartDate         *time.Time
	EndDate           *time.Time
}

// RequesterContext carries the per-request state the filter chain needs
// about the requesting user, precomputed once per recommendation call.
type RequesterContext struct {
	UserID     int64
	Gender     string
	University string

	// HasPreference reports whether a candidate has submitted matching
	// preferences; candidates without preferences are not recommendable.
	HasPreference func(userID int64) bool

	// IsEngaged reports whether the candidate already has a mutual
	// request with the requester that is accepted or still pending.
	IsEngaged func(userID int64) bool
}

var sleepPatternCodes = map[string]int{
	"very_early": 5,
	"early":      4,
	"normal":     3,
	"late":       2,
	"very_late":  1,
}

var cleaningFrequencyCodes = map[string]int{
	"daily":                5,
	"several_times_weekly": 4,
	"weekly":               3,
	"monthly":              2,
	"rarely":               1,
}

type ageRange struct {
	min int
	max int
}

var ageRanges = map[string]ageRange{
	"20-22": {20, 22},
	"23-25": {23, 25},
	"26-28": {26, 28},
	"29-30": {29, 30},
	"31+":   {31, 200},
}

// Eligible reports whether a candidate snapshot passes every filter for
// the given requester. Predicates run in a fixed order and short-circuit
// on the first failure.
func Eligible(rc RequesterContext, f Filter, snap *ProfileSnapshot, now time.Time) bool {
	if snap == nil {
		return false
	}
	if snap.UserID == rc.UserID {
		return false
	}
	if snap.Gender != rc.Gender {
		return false
	}
	if !snap.MatchingEnabled {
		return false
	}
	if rc.HasPreference == nil || !rc.HasPreference(snap.UserID) {
		return false
	}
	if snap.University != rc.University {
		return false
	}
	if rc.IsEngaged != nil && rc.IsEngaged(snap.UserID) {
		return false
	}
	if !matchesSleepPattern(f.SleepPattern, snap.SleepTime) {
		return false
	}
	if !matchesAgeRange(f.AgeRange, snap.BirthDate, now) {
		return false
	}
	if !matchesCleaningFrequency(f.CleaningFrequency, snap.CleaningFrequency) {
		return false
	}
	if !occupancyOverlaps(f.StartDate, f.EndDate, snap.StartUseDate, snap.EndUseDate) {
		return false
	}
	return true
}

// normalizeLiteral lowercases and trims a filter literal so clients may
// send any casing or padding.
func normalizeLiteral(literal string) string {
	return strings.ToLower(strings.TrimSpace(literal))
}

func matchesSleepPattern(literal string, sleepTime int) bool {
	literal = normalizeLiteral(literal)
	if literal == "" {
		return true
	}
	code, ok := sleepPatternCodes[literal]
	if !ok {
		return false
	}
	return sleepTime == code
}

func matchesAgeRange(literal string, birthDate time.Time, now time.Time) bool {
	literal = normalizeLiteral(literal)
	if literal == "" {
		return true
	}
	r, ok := ageRanges[literal]
	if !ok {
		return false
	}
	age := CalculateAgeAt(birthDate, now)
	return age >= r.min && age <= r.max
}

func matchesCleaningFrequency(literal string, cleaningFrequency int) bool {
	literal = normalizeLiteral(literal)
	if literal == "" {
		return true
	}
	code, ok := cleaningFrequencyCodes[literal]
	if !ok {
		return false
	}
	return cleaningFrequency == code
}

// occupancyOverlaps checks that the requested stay window intersects the
// candidate's availability window, bounds inclusive. The filter is only
// active when the requester supplied both dates; an active filter
// excludes candidates missing either of their own dates.
func occupancyOverlaps(wantStart, wantEnd *time.Time, haveStart, haveEnd time.Time) bool {
	if wantStart == nil || wantEnd == nil {
		return true
	}
	if haveStart.IsZero() || haveEnd.IsZero() {
		return false
	}
	return !haveEnd.Before(*wantStart) && !haveStart.After(*wantEnd)
}

// CalculateAge returns the whole-year age for a birth date as of today.
func CalculateAge(birthDate time.Time) int {
	return CalculateAgeAt(birthDate, time.Now())
}

// CalculateAgeAt computes whole years between birthDate and now,
// decrementing when this year's birthday has not yet passed. Never
// negative.
func CalculateAgeAt(birthDate time.Time, now time.Time) int {
	if birthDate.IsZero() {
		return 0
	}
	age := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
