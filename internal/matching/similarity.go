// internal/matching/similarity.go
// Deterministic weighted-attribute similarity between a requester's
// preference and a candidate's snapshot. Pure: identical inputs always
// produce the identical score, which is persisted as a point-in-time value.

package matching

import (
	"math"
	"time"
)

const (
	weightSmoking     = 0.20
	weightSleep       = 0.20
	weightCleanliness = 0.20
	weightAge         = 0.10
	weightNoise       = 0.10
	weightPet         = 0.10
	weightLifestyle   = 0.10

	scaleRange = 4.0 // coded attributes span 1..5
)

// Similarity scores a candidate snapshot against a preference, in [0,1]
// rounded to two decimals. Either input missing scores 0.
func Similarity(pref *Preference, snap *ProfileSnapshot) float64 {
	return SimilarityAt(pref, snap, time.Now())
}

// SimilarityAt is Similarity with an explicit reference time for the
// candidate's age bucket.
func SimilarityAt(pref *Preference, snap *ProfileSnapshot, now time.Time) float64 {
	if pref == nil || snap == nil {
		return 0.0
	}

	smokerScore := booleanScore(pref.IsSmoker, snap.IsSmoker)
	sleepScore := closenessScore(pref.SleepTime, snap.SleepTime)
	petScore := booleanScore(pref.IsPetAllowed, snap.IsPetAllowed)
	ageGapScore := ageGapScore(pref.PreferredAgeGap, snap.BirthDate, now)

	cleanlinessScore := (closenessScore(pref.CleaningFrequency, snap.CleaningFrequency) +
		closenessScore(pref.HygieneLevel, snap.HygieneLevel)) / 2.0

	noiseScore := (closenessScore(pref.NoiseSensitivity, snap.NoiseSensitivity) +
		booleanScore(pref.IsSnoring, snap.IsSnoring)) / 2.0

	lifestyleScore := (closenessScore(pref.DrinkingFrequency, snap.DrinkingFrequency) +
		closenessScore(pref.GuestFrequency, snap.GuestFrequency)) / 2.0

	final := smokerScore*weightSmoking +
		sleepScore*weightSleep +
		cleanlinessScore*weightCleanliness +
		ageGapScore*weightAge +
		noiseScore*weightNoise +
		petScore*weightPet +
		lifestyleScore*weightLifestyle

	return math.Round(final*100) / 100
}

// closenessScore is the normalized 1-5 proximity metric: 1 - |a-b|/4.
// Out-of-scale values (zero or negative) score 0.
func closenessScore(prefValue, actualValue int) float64 {
	if prefValue <= 0 || actualValue <= 0 {
		return 0.0
	}
	return 1.0 - math.Abs(float64(prefValue-actualValue))/scaleRange
}

func booleanScore(prefValue, actualValue bool) float64 {
	if prefValue == actualValue {
		return 1.0
	}
	return 0.0
}

// ageGapScore maps the candidate's age into the 5-bucket scheme and
// measures closeness against the preferred bucket. A candidate outside
// every bucket (under 20) scores 0.
func ageGapScore(preferredBucket int, birthDate time.Time, now time.Time) float64 {
	if preferredBucket <= 0 || birthDate.IsZero() {
		return 0.0
	}
	bucket := AgeBucket(CalculateAgeAt(birthDate, now))
	if bucket == 0 {
		return 0.0
	}
	return closenessScore(preferredBucket, bucket)
}

// AgeBucket maps an age to its 5-bucket code, or 0 if under 20.
func AgeBucket(age int) int {
	switch {
	case age >= 20 && age <= 22:
		return 1
	case age >= 23 && age <= 25:
		return 2
	case age >= 26 && age <= 28:
		return 3
	case age >= 29 && age <= 30:
		return 4
	case age >= 31:
		return 5
	default:
		return 0
	}
}
