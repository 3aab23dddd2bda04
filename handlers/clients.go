// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lunch-pick/auth"
	"github.com/danielhkuo/lunch-pick/middleware"
	"github.com/danielhkuo/lunch-pick/models"
)

type ClientHandler struct{}

func NewClientHandler() *ClientHandler {
	return &ClientHandler{}
}

// Register handles POST /clients
// Issues a new anonymous client id
func (h *ClientHandler) Register(w http.ResponseWriter, r *http.Request) {
	clientID := auth.GenerateClientID()

	slog.Info("client registered", "client_id", clientID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterClientResponse{
		ClientID: clientID,
	})
}
