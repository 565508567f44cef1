package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPreferenceNotFound = errors.New("match preference not found")
	ErrInvalidDateRange   = errors.New("end date precedes start date")
)

// CacheInvalidator is implemented by the matching candidate cache.
// Profile and preference mutations invalidate through this interface only;
// this package never writes cache entries itself.
type CacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID int64) error
}

type Service interface {
	UpsertProfile(ctx context.Context, userID int64, req *UpsertProfileRequest) (*RoomProfile, error)
	GetProfile(ctx context.Context, userID int64) (*RoomProfile, error)
	SetMatchingEnabled(ctx context.Context, userID int64, enabled bool) error

	UpsertPreference(ctx context.Context, userID int64, req *UpsertPreferenceRequest) (*MatchPreference, error)
	GetPreference(ctx context.Context, userID int64) (*MatchPreference, error)
}

type service struct {
	repo        Repository
	invalidator CacheInvalidator
	log         *logger.Logger
}

func NewService(repo Repository, invalidator CacheInvalidator, log *logger.Logger) Service {
	return &service{repo: repo, invalidator: invalidator, log: log}
}

func (s *service) UpsertProfile(ctx context.Context, userID int64, req *UpsertProfileRequest) (*RoomProfile, error) {
	start, end, err := parseDateRange(req.StartUseDate, req.EndUseDate)
	if err != nil {
		return nil, err
	}

	p := &RoomProfile{
		UserID:            userID,
		SleepTime:         req.SleepTime,
		CleaningFrequency: req.CleaningFrequency,
		HygieneLevel:      req.HygieneLevel,
		NoiseSensitivity:  req.NoiseSensitivity,
		DrinkingFrequency: req.DrinkingFrequency,
		GuestFrequency:    req.GuestFrequency,
		IsSmoker:          req.IsSmoker,
		IsPetAllowed:      req.IsPetAllowed,
		IsSnoring:         req.IsSnoring,
		PreferredAgeGap:   req.PreferredAgeGap,
		MBTI:              req.MBTI,
		StartUseDate:      start,
		EndUseDate:        end,
		MatchingEnabled:   req.MatchingEnabled,
	}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	s.invalidate(ctx, userID)
	return p, nil
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*RoomProfile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

func (s *service) SetMatchingEnabled(ctx context.Context, userID int64, enabled bool) error {
	if err := s.repo.SetMatchingEnabled(ctx, userID, enabled); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *service) UpsertPreference(ctx context.Context, userID int64, req *UpsertPreferenceRequest) (*MatchPreference, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	p := &MatchPreference{
		UserID:            userID,
		SleepTime:         req.SleepTime,
		CleaningFrequency: req.CleaningFrequency,
		HygieneLevel:      req.HygieneLevel,
		NoiseSensitivity:  req.NoiseSensitivity,
		DrinkingFrequency: req.DrinkingFrequency,
		GuestFrequency:    req.GuestFrequency,
		IsSmoker:          req.IsSmoker,
		IsPetAllowed:      req.IsPetAllowed,
		IsSnoring:         req.IsSnoring,
		PreferredAgeGap:   req.PreferredAgeGap,
		StartDate:         start,
		EndDate:           end,
	}
	if err := s.repo.UpsertPreference(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	// Registering a preference opts the user back into matching.
	if err := s.repo.SetMatchingEnabled(ctx, userID, true); err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return p, nil
}

func (s *service) GetPreference(ctx context.Context, userID int64) (*MatchPreference, error) {
	return s.repo.GetPreferenceByUserID(ctx, userID)
}

func (s *service) invalidate(ctx context.Context, userID int64) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("candidate cache invalidation failed", "userID", userID, "error", err)
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}
