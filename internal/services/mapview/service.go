// Package mapview derives what the map shows from the raw player data:
// per-country fill colours, overlap rows and per-player stats.
package mapview

import (
	"sort"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/palette"
)

// Overlap is a country visited by more than one player
type Overlap struct {
	Code     model.CountryCode
	Visitors []model.PlayerID
	Count    int
}

// Stats summarises one player's progress
type Stats struct {
	Visited    int
	Total      int
	Percentage float64
}

// Service computes the rendered view of the shared map
type Service struct{}

// New creates a new mapview service
func New() *Service {
	return &Service{}
}

// CountryColors returns the fill colour for every visited country. A
// country visited by several players gets the blend of their colours.
func (s *Service) CountryColors(players map[model.PlayerID]*model.Player) map[model.CountryCode]string {
	colours := s.visitorColours(players)

	out := make(map[model.CountryCode]string, len(colours))
	for code, cs := range colours {
		if hex, ok := palette.CountryColor(cs); ok {
			out[code] = hex
		}
	}
	return out
}

// Overlaps returns the countries visited by more than one player, most
// contested first, ties broken by code.
func (s *Service) Overlaps(players map[model.PlayerID]*model.Player) []Overlap {
	visitors := make(map[model.CountryCode][]model.PlayerID)
	for id, p := range players {
		for code := range p.Visited {
			visitors[code] = append(visitors[code], id)
		}
	}

	var out []Overlap
	for code, ids := range visitors {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, Overlap{Code: code, Visitors: ids, Count: len(ids)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// PlayerStats returns visited count and percentage against the given
// country total. A zero total yields a zero percentage.
func (s *Service) PlayerStats(player *model.Player, total int) Stats {
	visited := len(player.Visited)
	stats := Stats{Visited: visited, Total: total}
	if total > 0 {
		stats.Percentage = float64(visited) / float64(total) * 100
	}
	return stats
}

// visitorColours collects, per country, the colours of the players that
// visited it in deterministic player-id order
func (s *Service) visitorColours(players map[model.PlayerID]*model.Player) map[model.CountryCode][]string {
	ids := make([]model.PlayerID, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	colours := make(map[model.CountryCode][]string)
	for _, id := range ids {
		p := players[id]
		for code := range p.Visited {
			colours[code] = append(colours[code], p.Colour)
		}
	}
	return colours
}
