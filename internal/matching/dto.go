package matching

import "time"

// SendLikeRequest is the body of POST /matches/like.
type SendLikeRequest struct {
	ReceiverID int64 `json:"receiver_id" validate:"required,min=1"`
}

// Recommendation is one ranked candidate in a recommendation response.
type Recommendation struct {
	UserID          int64   `json:"user_id"`
	Name            string  `json:"name"`
	Gender          string  `json:"gender"`
	Age             int     `json:"age"`
	University      string  `json:"university"`
	StudentVerified bool    `json:"student_verified"`
	MBTI            string  `json:"mbti"`
	Score           float64 `json:"preference_score"`
	Kind            Kind    `json:"match_type"`
	Outcome         Status  `json:"match_status"`
}

// CandidateDetail is the full snapshot view returned for one candidate,
// scored against the requesting user.
type CandidateDetail struct {
	Snapshot ProfileSnapshot `json:"profile"`
	Age      int             `json:"age"`
	Score    float64         `json:"preference_score"`
	Kind     Kind            `json:"match_type"`
	Outcome  Status          `json:"match_status"`
}

// MatchView is one entry in a user's match status listing.
type MatchView struct {
	MatchID           int64      `json:"match_id"`
	PartnerID         int64      `json:"partner_id"`
	PartnerName       string     `json:"partner_name,omitempty"`
	Kind              Kind       `json:"match_type"`
	Outcome           Status     `json:"match_status"`
	MyResponse        Status     `json:"my_response"`
	PartnerResponse   Status     `json:"partner_response"`
	WaitingForPartner bool       `json:"waiting_for_partner"`
	Score             float64    `json:"preference_score"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// StatusSummary aggregates a user's match activity.
type StatusSummary struct {
	LikesSent       int `json:"likes_sent"`
	LikesReceived   int `json:"likes_received"`
	PendingRequests int `json:"pending_requests"`
	Accepted        int `json:"accepted"`
	Rejected        int `json:"rejected"`
}

// StatusResponse is the payload of GET /matches/status.
type StatusResponse struct {
	Matches []MatchView   `json:"matches"`
	Summary StatusSummary `json:"summary"`
}

// MatchResult is one confirmed match in GET /matches/results.
type MatchResult struct {
	MatchID     int64            `json:"match_id"`
	Partner     *ProfileSnapshot `json:"partner,omitempty"`
	PartnerID   int64            `json:"partner_id"`
	Score       float64          `json:"preference_score"`
	ConfirmedAt *time.Time       `json:"confirmed_at,omitempty"`
}
