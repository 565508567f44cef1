package verification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unimate/unimate-backend/internal/auth"
	"github.com/unimate/unimate-backend/internal/common/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RequestCode(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	resp, err := h.service.RequestCode(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotStudentEmail):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		case errors.Is(err, ErrResendTooSoon):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue verification code")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.VerifyCode(r.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrCodeInvalid), errors.Is(err, ErrCodeExpired):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrCodeMaxAttempts):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify code")
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "student verification completed")
}
