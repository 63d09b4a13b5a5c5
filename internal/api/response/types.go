package response

import (
	"time"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/services/auth"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/services/mapview"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username     string `json:"username,omitempty"`
	Guest        bool   `json:"guest,omitempty"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Username:     s.Username,
		Guest:        s.Guest,
		SessionToken: s.Token,
	}
}

// Player represents a map player in API responses
type Player struct {
	ID      string    `json:"id"`
	Colour  string    `json:"colour"`
	Created time.Time `json:"created"`
	Visited []string  `json:"visited"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(id model.PlayerID, p *model.Player) Player {
	codes := p.Visited.Codes()
	visited := make([]string, len(codes))
	for i, code := range codes {
		visited[i] = string(code)
	}
	return Player{
		ID:      string(id),
		Colour:  p.Colour,
		Created: p.Created,
		Visited: visited,
	}
}

// PlayerList is the response for listing players
type PlayerList struct {
	Players []Player `json:"players"`
}

// Country represents one selectable country
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CountryFromModel converts a geo.Country
func CountryFromModel(c geo.Country) Country {
	return Country{
		Name: c.Name,
		Code: string(c.Code),
	}
}

// CountryList is the response for the country catalogue
type CountryList struct {
	Countries []Country `json:"countries"`
}

// MapState is the rendered map: per-country fill colours
type MapState struct {
	Colors map[string]string `json:"colors"`
}

// MapStateFromColors converts the mapview colour table
func MapStateFromColors(colors map[model.CountryCode]string) MapState {
	out := make(map[string]string, len(colors))
	for code, hex := range colors {
		out[string(code)] = hex
	}
	return MapState{Colors: out}
}

// Overlap is one country visited by several players
type Overlap struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Visitors []string `json:"visitors"`
	Count    int      `json:"count"`
}

// OverlapFromModel converts a mapview.Overlap
func OverlapFromModel(o mapview.Overlap, name string) Overlap {
	visitors := make([]string, len(o.Visitors))
	for i, id := range o.Visitors {
		visitors[i] = string(id)
	}
	return Overlap{
		Code:     string(o.Code),
		Name:     name,
		Visitors: visitors,
		Count:    o.Count,
	}
}

// OverlapList is the response for the overlap table
type OverlapList struct {
	Overlaps []Overlap `json:"overlaps"`
}

// Stats is one player's coverage
type Stats struct {
	PlayerID   string  `json:"player_id"`
	Visited    int     `json:"visited"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// StatsFromModel converts mapview.Stats
func StatsFromModel(id model.PlayerID, s mapview.Stats) Stats {
	return Stats{
		PlayerID:   string(id),
		Visited:    s.Visited,
		Total:      s.Total,
		Percentage: s.Percentage,
	}
}

// ColourSuggestion is the response for a suggested colour
type ColourSuggestion struct {
	Colour string `json:"colour"`
}

// PaletteResponse lists the stored palette hexes
type PaletteResponse struct {
	Hexes []string `json:"hexes"`
}
