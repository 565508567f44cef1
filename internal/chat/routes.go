package chat

import (
	"github.com/gorilla/mux"

	"github.com/unimate/unimate-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/chatrooms").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.ListRooms).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", handler.GetRoom).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", handler.CloseRoom).Methods("DELETE")
}
