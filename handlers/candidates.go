// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/lunch-pick/auth"
	"github.com/danielhkuo/lunch-pick/middleware"
	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
)

const maxCandidateNameLen = 200

type CandidateHandler struct {
	candidates store.CandidateWriter
	adminKey   string
}

func NewCandidateHandler(candidates store.CandidateWriter, adminKey string) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, adminKey: adminKey}
}

// AddCandidate handles POST /candidates
// Appends a venue to the ballot. Requires X-Admin-Key.
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	// Validate admin key
	adminKey := r.Header.Get(middleware.AdminKeyHeader)
	if err := auth.ValidateAdminKey(adminKey, h.adminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Parse request
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(name) > maxCandidateNameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is too long")
		return
	}

	candidateID, err := h.candidates.AddCandidate(r.Context(), models.Candidate{
		Name:     name,
		Cuisine:  strings.TrimSpace(req.Cuisine),
		Link:     strings.TrimSpace(req.Link),
		Price:    strings.TrimSpace(req.Price),
		Distance: strings.TrimSpace(req.Distance),
	})
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", candidateID, "name", name)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
	})
}
