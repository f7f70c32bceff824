package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API
func setupRoutes(router *mux.Router, s *server) {
	router.HandleFunc("/", s.rootHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/v0/get_lyrics", s.getLyrics).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/api/v0/wordcloud", s.wordcloud).Methods(http.MethodGet, http.MethodPost)
}
