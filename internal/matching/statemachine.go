// internal/matching/statemachine.go
// Pure transition functions for the match record. Each takes a record by
// value and returns the next record; the caller persists the result under
// the per-pair lock. Kind only moves forward (NONE -> LIKE -> REQUEST) and
// outcome only moves forward (NONE -> PENDING -> ACCEPTED | REJECTED).

package matching

import (
	"errors"
	"time"
)

var (
	ErrNotParticipant   = errors.New("user is not a participant of this match")
	ErrAlreadyResponded = errors.New("user has already responded to this match")
	ErrInvalidDecision  = errors.New("decision must be ACCEPTED or REJECTED")
	ErrNotRequest       = errors.New("match is not in the request stage")
)

// NewLike builds a fresh one-sided like record. The score is a point-in-time
// snapshot of similarity and is never recomputed.
func NewLike(senderID, receiverID int64, score float64) Match {
	lo, hi := PairKey(senderID, receiverID)
	return Match{
		SenderID:       senderID,
		ReceiverID:     receiverID,
		UserLo:         lo,
		UserHi:         hi,
		Kind:           KindLike,
		Outcome:        StatusNone,
		SenderResponse: StatusPending,
		ReceiverResp:   StatusPending,
		Score:          score,
	}
}

// UpgradeToRequest promotes a record to the mutual request stage. The user
// who completed the pair becomes the sender, and both responses reset to
// PENDING so each side confirms the request independently.
func UpgradeToRequest(m Match, newSenderID, newReceiverID int64) Match {
	m.SenderID = newSenderID
	m.ReceiverID = newReceiverID
	m.Kind = KindRequest
	m.Outcome = StatusPending
	m.SenderResponse = StatusPending
	m.ReceiverResp = StatusPending
	return m
}

// ApplyResponse records one participant's decision and derives the final
// outcome. It fails if the caller is not a participant, has already
// responded, or the record is not a request.
func ApplyResponse(m Match, userID int64, decision Status, now time.Time) (Match, error) {
	if decision != StatusAccepted && decision != StatusRejected {
		return m, ErrInvalidDecision
	}
	if m.Kind != KindRequest {
		return m, ErrNotRequest
	}
	if !m.HasUser(userID) {
		return m, ErrNotParticipant
	}
	if HasResponded(m, userID) {
		return m, ErrAlreadyResponded
	}

	if userID == m.SenderID {
		m.SenderResponse = decision
	} else {
		m.ReceiverResp = decision
	}

	return deriveOutcome(m, now), nil
}

/// deriveOutcome applies the final-state rule after every response write:
// any rejection is decisive; both acceptances confirm; otherwise the
// request stays pending.
func deriveOutcome(m Match, now time.Time) Match {
	switch {
	case m.SenderResponse == StatusRejected || m.ReceiverResp == StatusRejected:
		m.Outcome = StatusRejected
	case m.SenderResponse == StatusAccepted && m.ReceiverResp == StatusAccepted:
		m.Outcome = StatusAccepted
		m.ConfirmedAt = &now
	default:
		m.Outcome = StatusPending
	}
	return m
}

// HasResponded reports whether the user's stored response is non-PENDING.
func HasResponded(m Match, userID int64) bool {
	return ResponseOf(m, userID) != StatusPending
}

// ResponseOf returns the stored response of the given participant.
// Non-participants read as PENDING.
func ResponseOf(m Match, userID int64) Status {
	switch userID {
	case m.SenderID:
		return m.SenderResponse
	case m.ReceiverID:
		return m.ReceiverResp
	}
	return StatusPending
}

// PartnerResponseOf returns the stored response of the user's counterpart.
func PartnerResponseOf(m Match, userID int64) Status {
	switch userID {
	case m.SenderID:
		return m.ReceiverResp
	case m.ReceiverID:
		return m.SenderResponse
	}
	return StatusPending
}
