package matching

import (
	"errors"
	"testing"
	"time"
)

func TestNewLike(t *testing.T) {
	m := NewLike(7, 3, 0.82)

	if m.Kind != KindLike {
		t.Errorf("Kind = %v, want %v", m.Kind, KindLike)
	}
	if m.Outcome != StatusNone {
		t.Errorf("Outcome = %v, want %v", m.Outcome, StatusNone)
	}
	if m.SenderID != 7 || m.ReceiverID != 3 {
		t.Errorf("participants = (%d, %d), want (7, 3)", m.SenderID, m.ReceiverID)
	}
	if m.UserLo != 3 || m.UserHi != 7 {
		t.Errorf("canonical pair = (%d, %d), want (3, 7)", m.UserLo, m.UserHi)
	}
	if m.SenderResponse != StatusPending || m.ReceiverResp != StatusPending {
		t.Errorf("responses = (%v, %v), want both PENDING", m.SenderResponse, m.ReceiverResp)
	}
	if m.Score != 0.82 {
		t.Errorf("Score = %v, want 0.82", m.Score)
	}
	if m.ConfirmedAt != nil {
		t.Error("ConfirmedAt must be nil for a fresh like")
	}
}

func TestUpgradeToRequest(t *testing.T) {
	like := NewLike(3, 7, 0.5)

	// 7 liked back, so 7 becomes the sender of the request.
	req := UpgradeToRequest(like, 7, 3)

	if req.Kind != KindRequest {
		t.Errorf("Kind = %v, want %v", req.Kind, KindRequest)
	}
	if req.Outcome != StatusPending {
		t.Errorf("Outcome = %v, want %v", req.Outcome, StatusPending)
	}
	if req.SenderID != 7 || req.ReceiverID != 3 {
		t.Errorf("participants = (%d, %d), want (7, 3)", req.SenderID, req.ReceiverID)
	}
	if req.SenderResponse != StatusPending || req.ReceiverResp != StatusPending {
		t.Error("responses must reset to PENDING on upgrade")
	}
	if req.UserLo != 3 || req.UserHi != 7 {
		t.Errorf("canonical pair changed to (%d, %d)", req.UserLo, req.UserHi)
	}
	if req.Score != 0.5 {
		t.Errorf("Score = %v, want the original 0.5", req.Score)
	}
}

func TestApplyResponse(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	request := func() Match {
		return UpgradeToRequest(NewLike(3, 7, 0.5), 7, 3)
	}

	t.Run("invalid decision rejected", func(t *testing.T) {
		_, err := ApplyResponse(request(), 7, StatusPending, now)
		if !errors.Is(err, ErrInvalidDecision) {
			t.Errorf("err = %v, want ErrInvalidDecision", err)
		}
	})

	t.Run("bare like cannot take a response", func(t *testing.T) {
		_, err := ApplyResponse(NewLike(3, 7, 0.5), 7, StatusAccepted, now)
		if !errors.Is(err, ErrNotRequest) {
			t.Errorf("err = %v, want ErrNotRequest", err)
		}
	})

	t.Run("non participant rejected", func(t *testing.T) {
		_, err := ApplyResponse(request(), 99, StatusAccepted, now)
		if !errors.Is(err, ErrNotParticipant) {
			t.Errorf("err = %v, want ErrNotParticipant", err)
		}
	})

	t.Run("double response rejected", func(t *testing.T) {
		m, err := ApplyResponse(request(), 7, StatusAccepted, now)
		if err != nil {
			t.Fatalf("first response: %v", err)
		}
		_, err = ApplyResponse(m, 7, StatusAccepted, now)
		if !errors.Is(err, ErrAlreadyResponded) {
			t.Errorf("err = %v, want ErrAlreadyResponded", err)
		}
	})

	t.Run("single acceptance stays pending", func(t *testing.T) {
		m, err := ApplyResponse(request(), 7, StatusAccepted, now)
		if err != nil {
			t.Fatal(err)
		}
		if m.Outcome != StatusPending {
			t.Errorf("Outcome = %v, want PENDING", m.Outcome)
		}
		if m.ConfirmedAt != nil {
			t.Error("ConfirmedAt must stay nil while pending")
		}
	})

	t.Run("both acceptances confirm the match", func(t *testing.T) {
		m, err := ApplyResponse(request(), 7, StatusAccepted, now)
		if err != nil {
			t.Fatal(err)
		}
		m, err = ApplyResponse(m, 3, StatusAccepted, now)
		if err != nil {
			t.Fatal(err)
		}
		if m.Outcome != StatusAccepted {
			t.Errorf("Outcome = %v, want ACCEPTED", m.Outcome)
		}
		if m.ConfirmedAt == nil || !m.ConfirmedAt.Equal(now) {
			t.Errorf("ConfirmedAt = %v, want %v", m.ConfirmedAt, now)
		}
	})

	t.Run("any rejection is decisive", func(t *testing.T) {
		m, err := ApplyResponse(request(), 7, StatusAccepted, now)
		if err != nil {
			t.Fatal(err)
		}
		m, err = ApplyResponse(m, 3, StatusRejected, now)
		if err != nil {
			t.Fatal(err)
		}
		if m.Outcome != StatusRejected {
			t.Errorf("Outcome = %v, want REJECTED", m.Outcome)
		}
		if m.ConfirmedAt != nil {
			t.Error("ConfirmedAt must stay nil on rejection")
		}
	})

	t.Run("first rejection settles before partner responds", func(t *testing.T) {
		m, err := ApplyResponse(request(), 3, StatusRejected, now)
		if err != nil {
			t.Fatal(err)
		}
		if m.Outcome != StatusRejected {
			t.Errorf("Outcome = %v, want REJECTED", m.Outcome)
		}
	})
}

func TestResponseHelpers(t *testing.T) {
	m := UpgradeToRequest(NewLike(3, 7, 0.5), 7, 3)
	m.SenderResponse = StatusAccepted

	if !HasResponded(m, 7) {
		t.Error("sender must read as responded")
	}
	if HasResponded(m, 3) {
		t.Error("receiver must not read as responded")
	}
	if got := ResponseOf(m, 7); got != StatusAccepted {
		t.Errorf("ResponseOf(sender) = %v, want ACCEPTED", got)
	}
	if got := PartnerResponseOf(m, 3); got != StatusAccepted {
		t.Errorf("PartnerResponseOf(receiver) = %v, want ACCEPTED", got)
	}
	if got := ResponseOf(m, 99); got != StatusPending {
		t.Errorf("ResponseOf(stranger) = %v, want PENDING", got)
	}
}

func TestPairKey(t *testing.T) {
	lo, hi := PairKey(9, 4)
	if lo != 4 || hi != 9 {
		t.Errorf("PairKey(9, 4) = (%d, %d), want (4, 9)", lo, hi)
	}
	lo, hi = PairKey(4, 9)
	if lo != 4 || hi != 9 {
		t.Errorf("PairKey(4, 9) = (%d, %d), want (4, 9)", lo, hi)
	}
}
