package matching

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/unimate/unimate-backend/internal/auth"
	"github.com/unimate/unimate-backend/internal/common/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRecommendations handles GET /matches/recommendations. Filters come
// from the query string; blank values are unconstrained.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	filter, err := parseFilter(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := h.service.GetRecommendations(r.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, ErrPreferenceRequired):
			utils.RespondWithError(w, http.StatusPreconditionFailed, err.Error())
		case errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recommendations")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, recs)
}

// GetCandidateDetail handles GET /matches/recommendations/{userId}.
func (h *Handler) GetCandidateDetail(w http.ResponseWriter, r *http.Request) {
	requesterID, _ := auth.UserIDFrom(r.Context())

	candidateID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	detail, err := h.service.GetCandidateDetail(r.Context(), requesterID, candidateID)
	if err != nil {
		if errors.Is(err, ErrCandidateNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load candidate")
		return
	}

	utils.RespondWithData(w, http.StatusOK, detail)
}

// SendLike handles POST /matches/like.
func (h *Handler) SendLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	var req SendLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.SendLike(r.Context(), userID, req.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfMatch):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrCandidateNotFound), errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrPreferenceRequired):
			utils.RespondWithError(w, http.StatusPreconditionFailed, err.Error())
		case errors.Is(err, ErrAlreadyLiked), errors.Is(err, ErrAlreadyRequested), errors.Is(err, ErrMatchDecided):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send like")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, m)
}

// CancelLike handles DELETE /matches/like/{userId}.
func (h *Handler) CancelLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	receiverID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.CancelLike(r.Context(), userID, receiverID); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound), errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotCancelable):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel like")
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "like canceled")
}

// Confirm handles POST /matches/{id}/confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Confirm)
}

// Reject handles POST /matches/{id}/reject.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.service.Reject)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, matchID int64) (*Match, error)) {
	userID, _ := auth.UserIDFrom(r.Context())

	matchID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	m, err := op(r.Context(), userID, matchID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrPreferenceRequired):
			utils.RespondWithError(w, http.StatusPreconditionFailed, err.Error())
		case errors.Is(err, ErrAlreadyResponded), errors.Is(err, ErrNotRequest):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record response")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, m)
}

// GetStatus handles GET /matches/status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	status, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load match status")
		return
	}

	utils.RespondWithData(w, http.StatusOK, status)
}

// GetResults handles GET /matches/results.
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	results, err := h.service.GetResults(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load match results")
		return
	}

	utils.RespondWithData(w, http.StatusOK, results)
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{
		SleepPattern:      q.Get("sleepPattern"),
		AgeRange:          q.Get("ageRange"),
		CleaningFrequency: q.Get("cleaningFrequency"),
	}

	if raw := q.Get("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, errors.New("startDate must be YYYY-MM-DD")
		}
		f.StartDate = &t
	}
	if raw := q.Get("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, errors.New("endDate must be YYYY-MM-DD")
		}
		f.EndDate = &t
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, errors.New("endDate must not precede startDate")
	}
	return f, nil
}
