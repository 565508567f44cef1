package matching

import (
	"testing"
	"time"
)

func eligibleSnapshot() *ProfileSnapshot {
	return &ProfileSnapshot{
		UserID:            2,
		Gender:            "FEMALE",
		BirthDate:         time.Date(2002, 1, 15, 0, 0, 0, 0, time.UTC), // 24 at testNow
		SleepTime:         3,
		CleaningFrequency: 5,
		University:        "Hanyang University",
		StartUseDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndUseDate:        time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		MatchingEnabled:   true,
	}
}

func requester() RequesterContext {
	return RequesterContext{
		UserID:        1,
		Gender:        "FEMALE",
		University:    "Hanyang University",
		HasPreference: func(int64) bool { return true },
		IsEngaged:     func(int64) bool { return false },
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		rc     func() RequesterContext
		filter Filter
		snap   func() *ProfileSnapshot
		want   bool
	}{
		{
			name:   "unconstrained candidate passes",
			rc:     requester,
			filter: Filter{},
			snap:   eligibleSnapshot,
			want:   true,
		},
		{
			name: "requester never sees themselves",
			rc:   requester,
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.UserID = 1
				return s
			},
			want: false,
		},
		{
			name: "matching disabled excludes",
			rc:   requester,
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.MatchingEnabled = false
				return s
			},
			want: false,
		},
		{
			name: "different gender excludes",
			rc:   requester,
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.Gender = "MALE"
				return s
			},
			want: false,
		},
		{
			name: "candidate without preferences excludes",
			rc: func() RequesterContext {
				rc := requester()
				rc.HasPreference = func(int64) bool { return false }
				return rc
			},
			snap: eligibleSnapshot,
			want: false,
		},
		{
			name: "different university excludes",
			rc:   requester,
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.University = "Korea University"
				return s
			},
			want: false,
		},
		{
			name: "already matched candidate excludes",
			rc: func() RequesterContext {
				rc := requester()
				rc.IsEngaged = func(int64) bool { return true }
				return rc
			},
			snap: eligibleSnapshot,
			want: false,
		},
		{
			name:   "sleep pattern literal matches coded value",
			rc:     requester,
			filter: Filter{SleepPattern: "normal"},
			snap:   eligibleSnapshot,
			want:   true,
		},
		{
			name:   "sleep pattern literal mismatch excludes",
			rc:     requester,
			filter: Filter{SleepPattern: "very_early"},
			snap:   eligibleSnapshot,
			want:   false,
		},
		{
			name:   "unknown sleep literal matches nobody",
			rc:     requester,
			filter: Filter{SleepPattern: "nocturnal"},
			snap:   eligibleSnapshot,
			want:   false,
		},
		{
			name:   "age range includes matching candidate",
			rc:     requester,
			filter: Filter{AgeRange: "23-25"},
			snap:   eligibleSnapshot,
			want:   true,
		},
		{
			name:   "age range excludes candidate outside it",
			rc:     requester,
			filter: Filter{AgeRange: "29-30"},
			snap:   eligibleSnapshot,
			want:   false,
		},
		{
			name:   "open ended age range includes older candidates",
			rc:     requester,
			filter: Filter{AgeRange: "31+"},
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
				return s
			},
			want: true,
		},
		{
			name:   "unknown age literal matches nobody",
			rc:     requester,
			filter: Filter{AgeRange: "18-19"},
			snap:   eligibleSnapshot,
			want:   false,
		},
		{
			name:   "cleaning frequency literal matches coded value",
			rc:     requester,
			filter: Filter{CleaningFrequency: "daily"},
			snap:   eligibleSnapshot,
			want:   true,
		},
		{
			name:   "cleaning frequency mismatch excludes",
			rc:     requester,
			filter: Filter{CleaningFrequency: "rarely"},
			snap:   eligibleSnapshot,
			want:   false,
		},
		{
			name:   "cleaning frequency several times weekly matches",
			rc:     requester,
			filter: Filter{CleaningFrequency: "several_times_weekly"},
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.CleaningFrequency = 4
				return s
			},
			want: true,
		},
		{
			name:   "cleaning frequency monthly matches",
			rc:     requester,
			filter: Filter{CleaningFrequency: "monthly"},
			snap: func() *ProfileSnapshot {
				s := eligibleSnapshot()
				s.CleaningFrequency = 2
				return s
			},
			want: true,
		},
		{
			name:   "literals are case and whitespace insensitive",
			rc:     requester,
			filter: Filter{CleaningFrequency: " Daily ", SleepPattern: "NORMAL"},
			snap:   eligibleSnapshot,
			want:   true,
		},
		{
			name: "overlapping occupancy window passes",
			rc:   requester,
			filter: Filter{
				StartDate: datePtr(2026, 6, 1),
				EndDate:   datePtr(2026, 9, 1),
			},
			snap: eligibleSnapshot,
			want: true,
		},
		{
			name: "candidate availability ending before request excludes",
			rc:   requester,
			filter: Filter{
				StartDate: datePtr(2027, 1, 1),
				EndDate:   datePtr(2027, 6, 1),
			},
			snap: eligibleSnapshot,
			want: false,
		},
		{
			name: "candidate availability starting after request excludes",
			rc:   requester,
			filter: Filter{
				StartDate: datePtr(2026, 1, 1),
				EndDate:   datePtr(2026, 2, 1),
			},
			snap: eligibleSnapshot,
			want: false,
		},
		{
			name: "date filter without an end date is inactive",
			rc:   requester,
			filter: Filter{
				StartDate: datePtr(2030, 1, 1),
			},
			snap: eligibleSnapshot,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rcFn := tt.rc
			if rcFn == nil {
				rcFn = requester
			}
			got := Eligible(rcFn(), tt.filter, tt.snap(), testNow)
			if got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligibleNilSnapshot(t *testing.T) {
	if Eligible(requester(), Filter{}, nil, testNow) {
		t.Error("nil snapshot must not be eligible")
	}
}

func TestCalculateAgeAt(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "birthday already passed this year",
			birth: time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  26,
		},
		{
			name:  "birthday not yet reached this year",
			birth: time.Date(2000, 11, 1, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  25,
		},
		{
			name:  "birthday today counts the full year",
			birth: time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  25,
		},
		{
			name:  "future birth date floors at zero",
			birth: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			now:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "zero birth date reads as zero",
			birth: time.Time{},
			now:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateAgeAt(tt.birth, tt.now); got != tt.want {
				t.Errorf("CalculateAgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}
