package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/services/player"
	"github.com/jurdabos/countries-visited/internal/web/middleware"
)

// PlayerHandler handles player management actions
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// Create adds a player with their chosen colour
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id := model.PlayerID(strings.TrimSpace(r.FormValue("player_id")))
	colour := r.FormValue("colour")

	if err := h.players.AddPlayer(r.Context(), id, colour); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPlayerID):
			middleware.SetFlash(w, "error", "Player name is required")
		case errors.Is(err, model.ErrInvalidColour):
			middleware.SetFlash(w, "error", "Pick a colour from the palette")
		default:
			middleware.SetFlash(w, "error", "Failed to add player")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Added "+string(id))
	http.Redirect(w, r, "/?player="+url.QueryEscape(string(id)), http.StatusSeeOther)
}

// UpdateVisits replaces a player's visited countries with the submitted set
func (h *PlayerHandler) UpdateVisits(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	codes := make([]model.CountryCode, 0, len(r.Form["codes"]))
	for _, raw := range r.Form["codes"] {
		codes = append(codes, model.CountryCode(raw))
	}

	if err := h.players.UpdateVisits(r.Context(), id, codes); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			middleware.SetFlash(w, "error", "No such player")
		} else {
			middleware.SetFlash(w, "error", "Failed to save visits")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Visits saved")
	http.Redirect(w, r, "/?player="+url.QueryEscape(string(id)), http.StatusSeeOther)
}

// Clear empties a player's visited countries
func (h *PlayerHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.players.ClearVisits(r.Context(), id); err != nil {
		middleware.SetFlash(w, "error", "Failed to clear visits")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Cleared visits for "+string(id))
	http.Redirect(w, r, "/?player="+url.QueryEscape(string(id)), http.StatusSeeOther)
}

// Delete removes a player entirely
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.players.DeletePlayer(r.Context(), id); err != nil {
		middleware.SetFlash(w, "error", "Failed to remove player")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Removed "+string(id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
