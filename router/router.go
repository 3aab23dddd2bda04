// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/lunch-pick/cliparse"
	"github.com/danielhkuo/lunch-pick/handlers"
	"github.com/danielhkuo/lunch-pick/middleware"
	"github.com/danielhkuo/lunch-pick/session"
	"github.com/danielhkuo/lunch-pick/store"
)

// NewRouter registers every route. candidates may be nil when the candidate
// list is managed outside this service.
func NewRouter(sessions *session.Registry, candidates store.CandidateWriter, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	clientHandler := handlers.NewClientHandler()
	ballotHandler := handlers.NewBallotHandler(sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Client identity
	mux.HandleFunc("POST /clients", middleware.WithLogging(clientHandler.Register))

	// Candidate management (requires X-Admin-Key)
	if candidates != nil {
		candidateHandler := handlers.NewCandidateHandler(candidates, cfg.AdminKey)
		mux.HandleFunc("POST /candidates", middleware.WithLogging(candidateHandler.AddCandidate))
	}

	// Voting (requires X-Client-ID)
	mux.HandleFunc("GET /ballot", middleware.WithLogging(ballotHandler.GetBallot))
	mux.HandleFunc("POST /ballot/candidates/{id}/increment", middleware.WithLogging(ballotHandler.Increment))
	mux.HandleFunc("POST /ballot/candidates/{id}/decrement", middleware.WithLogging(ballotHandler.Decrement))
	mux.HandleFunc("POST /ballot/submit", middleware.WithLogging(ballotHandler.Submit))

	// Results (sealed until the client has voted today)
	mux.HandleFunc("GET /results", middleware.WithLogging(ballotHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("lunch-pick API v1"))
	})

	return mux
}
