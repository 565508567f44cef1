package verification

import (
	"github.com/gorilla/mux"

	"github.com/unimate/unimate-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/verification").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/request", handler.RequestCode).Methods("POST")
	api.HandleFunc("/verify", handler.VerifyCode).Methods("POST")
}
