package profile

import (
	"github.com/gorilla/mux"

	"github.com/unimate/unimate-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/profile", handler.UpsertProfile).Methods("PUT")
	api.HandleFunc("/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/profile/matching", handler.SetMatchingEnabled).Methods("PATCH")
	api.HandleFunc("/profile/{userId:[0-9]+}", handler.GetProfile).Methods("GET")

	api.HandleFunc("/preferences", handler.UpsertPreference).Methods("PUT")
	api.HandleFunc("/preferences", handler.GetMyPreference).Methods("GET")
}
