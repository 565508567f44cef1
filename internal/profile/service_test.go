package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

type fakeRepo struct {
	profiles map[int64]*RoomProfile
	prefs    map[int64]*MatchPreference
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profiles: make(map[int64]*RoomProfile),
		prefs:    make(map[int64]*MatchPreference),
	}
}

func (r *fakeRepo) UpsertProfile(ctx context.Context, p *RoomProfile) error {
	stored := *p
	r.profiles[p.UserID] = &stored
	return nil
}

func (r *fakeRepo) GetProfileByUserID(ctx context.Context, userID int64) (*RoomProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakeRepo) SetMatchingEnabled(ctx context.Context, userID int64, enabled bool) error {
	p, ok := r.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.MatchingEnabled = enabled
	return nil
}

func (r *fakeRepo) UpsertPreference(ctx context.Context, p *MatchPreference) error {
	stored := *p
	r.prefs[p.UserID] = &stored
	return nil
}

func (r *fakeRepo) GetPreferenceByUserID(ctx context.Context, userID int64) (*MatchPreference, error) {
	p, ok := r.prefs[userID]
	if !ok {
		return nil, ErrPreferenceNotFound
	}
	out := *p
	return &out, nil
}

type fakeInvalidator struct {
	invalidated []int64
	err         error
}

func (f *fakeInvalidator) InvalidateUser(ctx context.Context, userID int64) error {
	f.invalidated = append(f.invalidated, userID)
	return f.err
}

func profileRequest() *UpsertProfileRequest {
	return &UpsertProfileRequest{
		SleepTime:         3,
		CleaningFrequency: 4,
		HygieneLevel:      4,
		NoiseSensitivity:  2,
		DrinkingFrequency: 2,
		GuestFrequency:    3,
		PreferredAgeGap:   2,
		MBTI:              "INTJ",
		StartUseDate:      "2026-03-01",
		EndUseDate:        "2026-12-31",
		MatchingEnabled:   true,
	}
}

func preferenceRequest() *UpsertPreferenceRequest {
	return &UpsertPreferenceRequest{
		SleepTime:         3,
		CleaningFrequency: 4,
		HygieneLevel:      4,
		NoiseSensitivity:  2,
		DrinkingFrequency: 2,
		GuestFrequency:    3,
		PreferredAgeGap:   2,
		StartDate:         "2026-03-01",
		EndDate:           "2026-12-31",
	}
}

func TestUpsertProfileInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInvalidator{}
	svc := NewService(repo, inv, logger.NewNop())

	p, err := svc.UpsertProfile(context.Background(), 1, profileRequest())
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if p.UserID != 1 {
		t.Errorf("UserID = %d, want 1", p.UserID)
	}
	if len(inv.invalidated) != 1 || inv.invalidated[0] != 1 {
		t.Errorf("invalidations = %v, want [1]", inv.invalidated)
	}
}

func TestUpsertProfileRejectsInvertedDates(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeInvalidator{}, logger.NewNop())

	req := profileRequest()
	req.StartUseDate = "2026-12-31"
	req.EndUseDate = "2026-03-01"

	_, err := svc.UpsertProfile(context.Background(), 1, req)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestUpsertPreferenceEnablesMatching(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInvalidator{}
	svc := NewService(repo, inv, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.UpsertProfile(ctx, 1, profileRequest()); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetMatchingEnabled(ctx, 1, false); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpsertPreference(ctx, 1, preferenceRequest()); err != nil {
		t.Fatalf("UpsertPreference: %v", err)
	}

	p, err := svc.GetProfile(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !p.MatchingEnabled {
		t.Error("submitting preferences must re-enable matching")
	}
}

func TestUpsertPreferenceWithoutProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeInvalidator{}, logger.NewNop())

	// No profile yet: the preference still saves, matching flips on later.
	if _, err := svc.UpsertPreference(context.Background(), 1, preferenceRequest()); err != nil {
		t.Fatalf("UpsertPreference: %v", err)
	}
	if _, err := svc.GetPreference(context.Background(), 1); err != nil {
		t.Errorf("preference must be stored: %v", err)
	}
}

func TestCacheInvalidationFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	inv := &fakeInvalidator{err: errors.New("redis down")}
	svc := NewService(repo, inv, logger.NewNop())

	if _, err := svc.UpsertProfile(context.Background(), 1, profileRequest()); err != nil {
		t.Fatalf("invalidation failure must not fail the write: %v", err)
	}
}
