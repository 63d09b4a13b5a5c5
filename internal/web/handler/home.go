package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/palette"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/services/mapview"
	"github.com/jurdabos/countries-visited/internal/services/player"
	"github.com/jurdabos/countries-visited/internal/web/middleware"
	"github.com/jurdabos/countries-visited/internal/web/templates/layout"
	"github.com/jurdabos/countries-visited/internal/web/templates/pages"
)

// HomeHandler renders the map page
type HomeHandler struct {
	players *player.Service
	mapview *mapview.Service
	geo     *geo.Service
	palette palette.Set
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(players *player.Service, mv *mapview.Service, geoService *geo.Service, paletteSet palette.Set) *HomeHandler {
	return &HomeHandler{
		players: players,
		mapview: mv,
		geo:     geoService,
		palette: paletteSet,
	}
}

// Home renders the map page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	all, err := h.players.ListPlayers(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	selected := model.PlayerID(r.URL.Query().Get("player"))
	if _, ok := all[selected]; !ok {
		selected = ""
	}

	data := pages.HomeData{
		PageData:  pageData(r, "Map"),
		Players:   h.playerRows(all),
		Colors:    h.palette.AllColors(),
		Used:      usedColours(all),
		Countries: h.countryRows(all, selected),
		Overlaps:  h.overlapRows(all),
		Selected:  selected,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *HomeHandler) playerRows(all map[model.PlayerID]*model.Player) []pages.PlayerRow {
	ids := make([]model.PlayerID, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := h.geo.Count()
	rows := make([]pages.PlayerRow, 0, len(ids))
	for _, id := range ids {
		p := all[id]
		stats := h.mapview.PlayerStats(p, total)
		rows = append(rows, pages.PlayerRow{
			ID:         id,
			Colour:     p.Colour,
			ColourName: palette.Name(p.Colour),
			Visited:    stats.Visited,
			Percentage: stats.Percentage,
		})
	}
	return rows
}

func (h *HomeHandler) countryRows(all map[model.PlayerID]*model.Player, selected model.PlayerID) []pages.CountryRow {
	colors := h.mapview.CountryColors(all)

	var selectedVisits model.CountrySet
	if p, ok := all[selected]; ok {
		selectedVisits = p.Visited
	}

	countries := h.geo.Countries()
	rows := make([]pages.CountryRow, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, pages.CountryRow{
			Name:    c.Name,
			Code:    c.Code,
			Colour:  colors[c.Code],
			Checked: selectedVisits.Contains(c.Code),
		})
	}
	return rows
}

func (h *HomeHandler) overlapRows(all map[model.PlayerID]*model.Player) []pages.OverlapRow {
	overlaps := h.mapview.Overlaps(all)
	rows := make([]pages.OverlapRow, 0, len(overlaps))
	for _, o := range overlaps {
		visitors := make([]string, len(o.Visitors))
		for i, id := range o.Visitors {
			visitors[i] = string(id)
		}
		rows = append(rows, pages.OverlapRow{
			Country:  h.geo.Name(o.Code),
			Code:     o.Code,
			Count:    o.Count,
			Visitors: strings.Join(visitors, ", "),
		})
	}
	return rows
}

func usedColours(all map[model.PlayerID]*model.Player) map[string]bool {
	used := make(map[string]bool, len(all))
	for _, p := range all {
		used[strings.ToLower(p.Colour)] = true
	}
	return used
}

// pageData builds the common chrome data from the request context
func pageData(r *http.Request, title string) layout.PageData {
	data := layout.PageData{
		Title: title,
		Flash: middleware.GetFlash(r.Context()),
	}
	if session := middleware.GetSession(r.Context()); session != nil {
		data.LoggedIn = true
		data.Username = session.Username
		if session.Guest {
			data.Username = "Guest"
		}
	}
	return data
}
