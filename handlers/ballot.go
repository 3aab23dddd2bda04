// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lunch-pick/middleware"
	"github.com/danielhkuo/lunch-pick/session"
	"github.com/danielhkuo/lunch-pick/store"
	"github.com/danielhkuo/lunch-pick/submit"
)

type BallotHandler struct {
	sessions *session.Registry
}

func NewBallotHandler(sessions *session.Registry) *BallotHandler {
	return &BallotHandler{sessions: sessions}
}

// clientSession resolves the caller's session, writing a 400 on a bad header
func (h *BallotHandler) clientSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	clientID, err := middleware.ClientID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return h.sessions.Get(clientID), true
}

// GetBallot handles GET /ballot
// Reloads candidates and votes. Tallies stay hidden until the client has voted.
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.clientSession(w, r)
	if !ok {
		return
	}

	if err := s.Load(r.Context()); err != nil {
		writeSessionError(w, s, err)
		return
	}

	ballot, err := s.View()
	if err != nil {
		writeSessionError(w, s, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ballot)
}

// Increment handles POST /ballot/candidates/{id}/increment
func (h *BallotHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, (*session.Session).Increment)
}

// Decrement handles POST /ballot/candidates/{id}/decrement
func (h *BallotHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, (*session.Session).Decrement)
}

func (h *BallotHandler) adjust(w http.ResponseWriter, r *http.Request, apply func(*session.Session, string) error) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	s, ok := h.clientSession(w, r)
	if !ok {
		return
	}

	if err := s.EnsureLoaded(r.Context()); err != nil {
		writeSessionError(w, s, err)
		return
	}

	if err := apply(s, candidateID); err != nil {
		writeSessionError(w, s, err)
		return
	}

	ballot, err := s.View()
	if err != nil {
		writeSessionError(w, s, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ballot)
}

// Submit handles POST /ballot/submit
// Writes the allocation to the ledger and returns the now visible results
func (h *BallotHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.clientSession(w, r)
	if !ok {
		return
	}

	if err := s.EnsureLoaded(r.Context()); err != nil {
		writeSessionError(w, s, err)
		return
	}

	results, err := s.Submit(r.Context())
	if err != nil {
		writeSessionError(w, s, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, results)
}

// GetResults handles GET /results
// Returns 403 until the client has voted today
func (h *BallotHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	s, ok := h.clientSession(w, r)
	if !ok {
		return
	}

	if err := s.Load(r.Context()); err != nil {
		writeSessionError(w, s, err)
		return
	}

	results, err := s.Results()
	if err != nil {
		writeSessionError(w, s, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

func writeSessionError(w http.ResponseWriter, s *session.Session, err error) {
	var batchErr *submit.BatchError

	switch {
	case errors.Is(err, session.ErrResultsUnavailable):
		slog.Error("results refresh failed after submission", "client_id", s.ClientID(), "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Votes submitted, but results could not be loaded. Reload to see them.")
	case errors.Is(err, store.ErrFetch):
		slog.Error("failed to load ballot", "client_id", s.ClientID(), "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Could not load candidates or votes. Please retry.")
	case errors.As(err, &batchErr):
		slog.Error("vote submission failed", "client_id", s.ClientID(), "batch", batchErr.Batch, "committed", batchErr.Committed, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to submit votes. Please retry.")
	case errors.Is(err, session.ErrSubmissionInProgress):
		middleware.ErrorResponse(w, http.StatusConflict, "A submission is already in progress")
	case errors.Is(err, session.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted today")
	case errors.Is(err, session.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
	case errors.Is(err, submit.ErrEmptyAllocation):
		middleware.ErrorResponse(w, http.StatusBadRequest, "No votes allocated")
	case errors.Is(err, session.ErrResultsSealed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden until you vote")
	case errors.Is(err, session.ErrNotLoaded):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ballot not loaded. Please retry.")
	default:
		slog.Error("ballot request failed", "client_id", s.ClientID(), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
