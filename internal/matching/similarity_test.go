package matching

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// alignedPair returns a preference and snapshot that agree on every
// weighted attribute, scoring exactly 1.0.
func alignedPair() (*Preference, *ProfileSnapshot) {
	pref := &Preference{
		UserID:            1,
		SleepTime:         3,
		CleaningFrequency: 4,
		HygieneLevel:      4,
		NoiseSensitivity:  2,
		DrinkingFrequency: 2,
		GuestFrequency:    3,
		IsSmoker:          false,
		IsPetAllowed:      true,
		IsSnoring:         false,
		PreferredAgeGap:   2,
	}
	snap := &ProfileSnapshot{
		UserID:            2,
		BirthDate:         time.Date(2002, 1, 15, 0, 0, 0, 0, time.UTC), // 24 at testNow
		SleepTime:         3,
		CleaningFrequency: 4,
		HygieneLevel:      4,
		NoiseSensitivity:  2,
		DrinkingFrequency: 2,
		GuestFrequency:    3,
		IsSmoker:          false,
		IsPetAllowed:      true,
		IsSnoring:         false,
	}
	return pref, snap
}

func TestSimilarityAt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(pref *Preference, snap *ProfileSnapshot)
		want   float64
	}{
		{
			name:   "full agreement scores one",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {},
			want:   1.0,
		},
		{
			name: "smoking mismatch drops its full weight",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				snap.IsSmoker = true
			},
			want: 0.80,
		},
		{
			name: "maximal sleep distance zeroes the sleep term",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				pref.SleepTime = 5
				snap.SleepTime = 1
			},
			want: 0.80,
		},
		{
			name: "pet mismatch drops its weight",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				snap.IsPetAllowed = false
			},
			want: 0.90,
		},
		{
			name: "cleanliness averages cleaning and hygiene",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				// both components one step off -> averaged closeness 0.75
				snap.CleaningFrequency = 3
				snap.HygieneLevel = 5
			},
			want: 0.95,
		},
		{
			name: "noise averages sensitivity and snoring",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				snap.IsSnoring = true
			},
			want: 0.95,
		},
		{
			name: "candidate under twenty zeroes the age term",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				snap.BirthDate = time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)
			},
			want: 0.90,
		},
		{
			name: "age bucket two steps away scores half the weight",
			mutate: func(pref *Preference, snap *ProfileSnapshot) {
				// age 29 -> bucket 4, preferred 2 -> closeness 0.5
				snap.BirthDate = time.Date(1997, 1, 15, 0, 0, 0, 0, time.UTC)
			},
			want: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, snap := alignedPair()
			tt.mutate(pref, snap)
			got := SimilarityAt(pref, snap, testNow)
			if got != tt.want {
				t.Errorf("SimilarityAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarityAtMissingInputs(t *testing.T) {
	pref, snap := alignedPair()

	if got := SimilarityAt(nil, snap, testNow); got != 0.0 {
		t.Errorf("nil preference: got %v, want 0", got)
	}
	if got := SimilarityAt(pref, nil, testNow); got != 0.0 {
		t.Errorf("nil snapshot: got %v, want 0", got)
	}
}

func TestSimilarityAtIsDeterministic(t *testing.T) {
	pref, snap := alignedPair()
	snap.CleaningFrequency = 2

	first := SimilarityAt(pref, snap, testNow)
	for i := 0; i < 10; i++ {
		if got := SimilarityAt(pref, snap, testNow); got != first {
			t.Fatalf("score changed between calls: %v then %v", first, got)
		}
	}
}

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{19, 0},
		{20, 1},
		{22, 1},
		{23, 2},
		{25, 2},
		{26, 3},
		{28, 3},
		{29, 4},
		{30, 4},
		{31, 5},
		{45, 5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := AgeBucket(tt.age); got != tt.want {
			t.Errorf("AgeBucket(%d) = %d, want %d", tt.age, got, tt.want)
		}
	}
}
