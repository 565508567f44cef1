package matching

import (
	"github.com/gorilla/mux"

	"github.com/unimate/unimate-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")
	api.HandleFunc("/recommendations/{userId:[0-9]+}", handler.GetCandidateDetail).Methods("GET")

	api.HandleFunc("/like", handler.SendLike).Methods("POST")
	api.HandleFunc("/like/{userId:[0-9]+}", handler.CancelLike).Methods("DELETE")

	api.HandleFunc("/{id:[0-9]+}/confirm", handler.Confirm).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/reject", handler.Reject).Methods("POST")

	api.HandleFunc("/status", handler.GetStatus).Methods("GET")
	api.HandleFunc("/results", handler.GetResults).Methods("GET")
}
