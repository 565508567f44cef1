package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

var (
	ErrPreferenceRequired = errors.New("matching preferences must be submitted first")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrSelfMatch          = errors.New("cannot match with yourself")
	ErrAlreadyLiked       = errors.New("like already sent to this user")
	ErrAlreadyRequested   = errors.New("a mutual request already exists with this user")
	ErrMatchDecided       = errors.New("match already has a final outcome")
	ErrNotCancelable      = errors.New("only your own un-answered like can be canceled")
)

/// Notifier delivers match-related notifications. Calls are best effort:
// the service logs and swallows failures.
type Notifier interface {
	LikeReceived(ctx context.Context, senderID int64, senderName string, receiverID int64) error
	LikeCanceled(ctx context.Context, senderID int64, senderName string, receiverID int64) error
	MatchConfirmed(ctx context.Context, senderID, receiverID int64, senderName, receiverName string, roomID *int64) error
}

// RoomOpener provisions a chat room for a mutual pair and returns its
// id. Best effort.
type RoomOpener interface {
	OpenRoom(ctx context.Context, userA, userB int64) (int64, error)
}

// ServiceConfig carries the tunables the matching service needs.
type ServiceConfig struct {
	RecommendationLimit int
	SideEffectTimeout   time.Duration
}

type Service struct {
	repo     Repository
	cache    *CandidateCache
	notifier Notifier
	rooms    RoomOpener
	log      *logger.Logger
	cfg      ServiceConfig

	pairLocks pairLockTable
}

func NewService(repo Repository, cache *CandidateCache, notifier Notifier, rooms RoomOpener, log *logger.Logger, cfg ServiceConfig) *Service {
	if cfg.RecommendationLimit <= 0 {
		cfg.RecommendationLimit = 10
	}
	if cfg.SideEffectTimeout <= 0 {
		cfg.SideEffectTimeout = 3 * time.Second
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		rooms:    rooms,
		log:      log,
		cfg:      cfg,
		pairLocks: pairLockTable{
			locks: make(map[[2]int64]*sync.Mutex),
		},
	}
}

// GetRecommendations filters the candidate set against the caller's
// context and filters, scores every survivor, and returns the top
// candidates ordered by score.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, filter Filter) ([]Recommendation, error) {
	start := time.Now()
	defer func() { recordRecommendationDuration(time.Since(start)) }()

	pref, err := s.repo.GetPreferenceByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load preference: %w", err)
	}
	if pref == nil {
		return nil, ErrPreferenceRequired
	}

	me, err := s.repo.GetUserInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	snaps, err := s.cache.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	prefHolders, err := s.repo.PreferenceHolderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preference holders: %w", err)
	}
	engaged, err := s.repo.EngagedPartnerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load engaged partners: %w", err)
	}
	mine, err := s.repo.ListMatchesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	relations := make(map[int64]Match, len(mine))
	for _, m := range mine {
		relations[m.PartnerOf(userID)] = m
	}

	rc := RequesterContext{
		UserID:        userID,
		Gender:        me.Gender,
		University:    me.University,
		HasPreference: func(id int64) bool { return prefHolders[id] },
		IsEngaged:     func(id int64) bool { return engaged[id] },
	}

	now := time.Now()
	type scored struct {
		snap  *ProfileSnapshot
		score float64
	}
	var candidates []scored
	for i := range snaps {
		if !Eligible(rc, filter, &snaps[i], now) {
			continue
		}
		score := SimilarityAt(pref, &snaps[i], now)
		recordSimilarityScore(score)
		candidates = append(candidates, scored{snap: &snaps[i], score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].snap.UserID < candidates[j].snap.UserID
	})
	if len(candidates) > s.cfg.RecommendationLimit {
		candidates = candidates[:s.cfg.RecommendationLimit]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		kind, outcome := KindNone, StatusNone
		if rel, ok := relations[c.snap.UserID]; ok {
			kind, outcome = rel.Kind, rel.Outcome
		}
		recs = append(recs, Recommendation{
			UserID:          c.snap.UserID,
			Name:            c.snap.Name,
			Gender:          c.snap.Gender,
			Age:             CalculateAgeAt(c.snap.BirthDate, now),
			University:      c.snap.University,
			StudentVerified: c.snap.StudentVerified,
			MBTI:            c.snap.MBTI,
			Score:           c.score,
			Kind:            kind,
			Outcome:         outcome,
		})
	}
	return recs, nil
}

// GetCandidateDetail returns one candidate's full snapshot with the
// caller's similarity score. A missing caller preference scores 0.
func (s *Service) GetCandidateDetail(ctx context.Context, requesterID, candidateID int64) (*CandidateDetail, error) {
	snap, err := s.cache.GetUser(ctx, candidateID)
	if errors.Is(err, ErrCacheMiss) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}

	pref, err := s.repo.GetPreferenceByUserID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load preference: %w", err)
	}

	kind, outcome := KindNone, StatusNone
	rel, err := s.repo.GetMatchByPair(ctx, requesterID, candidateID)
	if err != nil && !errors.Is(err, ErrMatchNotFound) {
		return nil, fmt.Errorf("load match: %w", err)
	}
	if rel != nil {
		kind, outcome = rel.Kind, rel.Outcome
	}

	now := time.Now()
	return &CandidateDetail{
		Snapshot: *snap,
		Age:      CalculateAgeAt(snap.BirthDate, now),
		Score:    SimilarityAt(pref, snap, now),
		Kind:     kind,
		Outcome:  outcome,
	}, nil
}

// SendLike records a one-sided like, or promotes the pair to a mutual
// request when the receiver had already liked the sender. The promotion
// is the point where the chat room opens and both sides are notified.
func (s *Service) SendLike(ctx context.Context, senderID, receiverID int64) (*Match, error) {
	if senderID == receiverID {
		return nil, ErrSelfMatch
	}

	sender, err := s.repo.GetUserInfo(ctx, senderID)
	if err != nil {
		return nil, err
	}
	snap, err := s.cache.GetUser(ctx, receiverID)
	if errors.Is(err, ErrCacheMiss) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load receiver snapshot: %w", err)
	}
	if err := s.requirePreference(ctx, receiverID); err != nil {
		return nil, err
	}

	unlock := s.pairLocks.lock(senderID, receiverID)
	defer unlock()

	existing, err := s.repo.GetMatchByPair(ctx, senderID, receiverID)
	if err != nil && !errors.Is(err, ErrMatchNotFound) {
		return nil, fmt.Errorf("load match: %w", err)
	}

	if existing == nil {
		pref, err := s.repo.GetPreferenceByUserID(ctx, senderID)
		if err != nil {
			return nil, fmt.Errorf("load preference: %w", err)
		}
		m := NewLike(senderID, receiverID, Similarity(pref, snap))
		if err := s.repo.CreateMatch(ctx, &m); err != nil {
			return nil, fmt.Errorf("create like: %w", err)
		}
		recordLike("sent")
		s.runSideEffect("notify like", func(ctx context.Context) error {
			return s.notifier.LikeReceived(ctx, senderID, sender.Name, receiverID)
		})
		return &m, nil
	}

	switch {
	case existing.Outcome == StatusAccepted || existing.Outcome == StatusRejected:
		return nil, ErrMatchDecided
	case existing.Kind == KindRequest:
		return nil, ErrAlreadyRequested
	case existing.SenderID == senderID:
		return nil, ErrAlreadyLiked
	}

	// The receiver liked us first: the pair is now mutual.
	next := UpgradeToRequest(*existing, senderID, receiverID)
	if err := s.repo.UpdateMatch(ctx, &next); err != nil {
		return nil, fmt.Errorf("promote to request: %w", err)
	}
	recordLike("mutual")

	senderName, receiverName := sender.Name, snap.Name
	s.runSideEffect("open room and notify match", func(ctx context.Context) error {
		var roomID *int64
		id, err := s.rooms.OpenRoom(ctx, senderID, receiverID)
		if err != nil {
			s.log.Warn("chat room provisioning failed",
				"sender_id", senderID, "receiver_id", receiverID, "error", err)
		} else {
			roomID = &id
		}
		return s.notifier.MatchConfirmed(ctx, senderID, receiverID, senderName, receiverName, roomID)
	})
	return &next, nil
}

// CancelLike withdraws a bare like the caller sent. Mutual requests and
// decided matches cannot be withdrawn.
func (s *Service) CancelLike(ctx context.Context, senderID, receiverID int64) error {
	sender, err := s.repo.GetUserInfo(ctx, senderID)
	if err != nil {
		return err
	}

	unlock := s.pairLocks.lock(senderID, receiverID)
	defer unlock()

	m, err := s.repo.GetMatchByPair(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if m.Kind != KindLike || m.SenderID != senderID {
		return ErrNotCancelable
	}
	if err := s.repo.DeleteMatch(ctx, m.ID); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	recordLike("canceled")
	s.runSideEffect("notify like canceled", func(ctx context.Context) error {
		return s.notifier.LikeCanceled(ctx, senderID, sender.Name, receiverID)
	})
	return nil
}

// Confirm records the caller's acceptance of a match request.
func (s *Service) Confirm(ctx context.Context, userID, matchID int64) (*Match, error) {
	return s.respond(ctx, userID, matchID, StatusAccepted)
}

// Reject records the caller's rejection of a match request.
func (s *Service) Reject(ctx context.Context, userID, matchID int64) (*Match, error) {
	return s.respond(ctx, userID, matchID, StatusRejected)
}

func (s *Service) respond(ctx context.Context, userID, matchID int64, decision Status) (*Match, error) {
	probe, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !probe.HasUser(userID) {
		return nil, ErrNotParticipant
	}
	// A stored match becomes unconfirmable if either side has since
	// deleted their preferences.
	if err := s.requirePreference(ctx, probe.UserLo); err != nil {
		return nil, err
	}
	if err := s.requirePreference(ctx, probe.UserHi); err != nil {
		return nil, err
	}

	unlock := s.pairLocks.lock(probe.UserLo, probe.UserHi)
	defer unlock()

	// Re-read under the pair lock; the row may have moved.
	m, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	cur := *m
	if cur.Kind == KindLike {
		// Responding to a bare like promotes it to a request first,
		// resetting both responses. Any participant may trigger this,
		// the like's own sender included.
		cur = UpgradeToRequest(cur, cur.SenderID, cur.ReceiverID)
	}

	next, err := ApplyResponse(cur, userID, decision, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMatch(ctx, &next); err != nil {
		return nil, fmt.Errorf("update match: %w", err)
	}
	recordResponse(decision)

	if next.Outcome == StatusAccepted {
		recordConfirmedMatch()
	}
	return &next, nil
}

func (s *Service) requirePreference(ctx context.Context, userID int64) error {
	pref, err := s.repo.GetPreferenceByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load preference: %w", err)
	}
	if pref == nil {
		return ErrPreferenceRequired
	}
	return nil
}

// GetStatus lists every match the user participates in, annotated with
// whose response is outstanding, plus aggregate counts.
func (s *Service) GetStatus(ctx context.Context, userID int64) (*StatusResponse, error) {
	matches, err := s.repo.ListMatchesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	names := s.partnerNames(ctx, matches, userID)

	resp := &StatusResponse{Matches: make([]MatchView, 0, len(matches))}
	for _, m := range matches {
		partnerID := m.PartnerOf(userID)
		mine := ResponseOf(m, userID)
		theirs := PartnerResponseOf(m, userID)
		view := MatchView{
			MatchID:           m.ID,
			PartnerID:         partnerID,
			PartnerName:       names[partnerID],
			Kind:              m.Kind,
			Outcome:           m.Outcome,
			MyResponse:        mine,
			PartnerResponse:   theirs,
			WaitingForPartner: mine != StatusPending && theirs == StatusPending,
			Score:             m.Score,
			ConfirmedAt:       m.ConfirmedAt,
			UpdatedAt:         m.UpdatedAt,
		}
		resp.Matches = append(resp.Matches, view)

		switch {
		case m.Outcome == StatusAccepted:
			resp.Summary.Accepted++
		case m.Outcome == StatusRejected:
			resp.Summary.Rejected++
		case m.Kind == KindRequest:
			resp.Summary.PendingRequests++
		case m.SenderID == userID:
			resp.Summary.LikesSent++
		default:
			resp.Summary.LikesReceived++
		}
	}
	return resp, nil
}

// GetResults lists the user's confirmed matches with partner snapshots.
func (s *Service) GetResults(ctx context.Context, userID int64) ([]MatchResult, error) {
	matches, err := s.repo.ListAcceptedMatchesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list accepted matches: %w", err)
	}

	results := make([]MatchResult, 0, len(matches))
	for _, m := range matches {
		partnerID := m.PartnerOf(userID)
		result := MatchResult{
			MatchID:     m.ID,
			PartnerID:   partnerID,
			Score:       m.Score,
			ConfirmedAt: m.ConfirmedAt,
		}
		if snap, err := s.cache.GetUser(ctx, partnerID); err == nil {
			result.Partner = snap
		} else if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("failed to load partner snapshot", "partner_id", partnerID, "error", err)
		}
		results = append(results, result)
	}
	return results, nil
}

// partnerNames resolves display names for the partners in a match list.
// Lookup failures degrade to empty names, never errors.
func (s *Service) partnerNames(ctx context.Context, matches []Match, userID int64) map[int64]string {
	names := make(map[int64]string, len(matches))
	if len(matches) == 0 {
		return names
	}
	snaps, err := s.cache.GetAll(ctx)
	if err != nil {
		s.log.Warn("failed to load candidate names", "error", err)
		return names
	}
	byID := make(map[int64]string, len(snaps))
	for _, snap := range snaps {
		byID[snap.UserID] = snap.Name
	}
	for _, m := range matches {
		id := m.PartnerOf(userID)
		names[id] = byID[id]
	}
	return names
}

// runSideEffect executes a best-effort action detached from the request
// with its own deadline. Failures are logged and dropped.
func (s *Service) runSideEffect(name string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SideEffectTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Warn("side effect failed", "effect", name, "error", err)
		}
	}()
}

// pairLockTable hands out one mutex per unordered user pair so writes to
// the same match row serialize.
type pairLockTable struct {
	mu    sync.Mutex
	locks map[[2]int64]*sync.Mutex
}

func (t *pairLockTable) lock(a, b int64) func() {
	lo, hi := PairKey(a, b)
	key := [2]int64{lo, hi}

	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
