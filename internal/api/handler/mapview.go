package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jurdabos/countries-visited/internal/api/response"
	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/services/mapview"
	"github.com/jurdabos/countries-visited/internal/services/player"
)

// MapHandler handles the rendered-map endpoints
type MapHandler struct {
	players *player.Service
	mapview *mapview.Service
	geo     *geo.Service
}

// NewMapHandler creates a new map handler
func NewMapHandler(players *player.Service, mv *mapview.Service, geoService *geo.Service) *MapHandler {
	return &MapHandler{
		players: players,
		mapview: mv,
		geo:     geoService,
	}
}

// GetMap handles GET /api/v1/map
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	all, err := h.players.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	colors := h.mapview.CountryColors(all)
	response.JSON(w, http.StatusOK, response.MapStateFromColors(colors))
}

// GetOverlaps handles GET /api/v1/map/overlaps
func (h *MapHandler) GetOverlaps(w http.ResponseWriter, r *http.Request) {
	all, err := h.players.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	overlaps := h.mapview.Overlaps(all)
	out := make([]response.Overlap, 0, len(overlaps))
	for _, o := range overlaps {
		out = append(out, response.OverlapFromModel(o, h.geo.Name(o.Code)))
	}

	response.JSON(w, http.StatusOK, response.OverlapList{Overlaps: out})
}

// GetStats handles GET /api/v1/players/{id}/stats
func (h *MapHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	p, err := h.players.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	stats := h.mapview.PlayerStats(p, h.geo.Count())
	response.JSON(w, http.StatusOK, response.StatsFromModel(id, stats))
}

// GetCountries handles GET /api/v1/countries
func (h *MapHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries := h.geo.Countries()
	out := make([]response.Country, 0, len(countries))
	for _, c := range countries {
		out = append(out, response.CountryFromModel(c))
	}

	response.JSON(w, http.StatusOK, response.CountryList{Countries: out})
}
