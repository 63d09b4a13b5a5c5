package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/jurdabos/countries-visited/internal/api/request"
	"github.com/jurdabos/countries-visited/internal/api/response"
	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/services/player"
)

// PlayerHandler handles map player endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.players.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	ids := make([]model.PlayerID, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	players := make([]response.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, response.PlayerFromModel(id, all[id]))
	}

	response.JSON(w, http.StatusOK, response.PlayerList{Players: players})
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	p, err := h.players.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(id, p))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	colour := req.Colour
	if colour == "" {
		suggested, err := h.players.SuggestColour(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		colour = suggested
	}

	id := model.PlayerID(req.PlayerID)
	if err := h.players.AddPlayer(r.Context(), id, colour); err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(id, p))
}

// UpdateVisits handles PUT /api/v1/players/{id}/visits
func (h *PlayerHandler) UpdateVisits(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.UpdateVisitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	codes := make([]model.CountryCode, len(req.Codes))
	for i, code := range req.Codes {
		codes[i] = model.CountryCode(code)
	}

	if err := h.players.UpdateVisits(r.Context(), id, codes); err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(id, p))
}

// ClearVisits handles DELETE /api/v1/players/{id}/visits
func (h *PlayerHandler) ClearVisits(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.players.ClearVisits(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.players.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SuggestColour handles GET /api/v1/players/suggest-colour
func (h *PlayerHandler) SuggestColour(w http.ResponseWriter, r *http.Request) {
	hex, err := h.players.SuggestColour(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ColourSuggestion{Colour: hex})
}

// Palette handles GET /api/v1/palette
func (h *PlayerHandler) Palette(w http.ResponseWriter, r *http.Request) {
	hexes, err := h.players.PaletteHexes(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaletteResponse{Hexes: hexes})
}
