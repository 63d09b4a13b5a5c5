package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case MapState:
		o.printMapState(v)
	case OverlapList:
		o.printOverlapList(v)
	case Stats:
		o.printStats(v)
	case CountryList:
		o.printCountryList(v)
	case ColourSuggestion:
		o.printColourSuggestion(v)
	case PaletteResult:
		o.printPaletteResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Username     string `json:"username,omitempty"`
	Guest        bool   `json:"guest,omitempty"`
	SessionToken string `json:"session_token"`
}

// Player response type
type Player struct {
	ID      string   `json:"id"`
	Colour  string   `json:"colour"`
	Created string   `json:"created"`
	Visited []string `json:"visited"`
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players"`
}

// MapState response type
type MapState struct {
	Colors map[string]string `json:"colors"`
}

// Overlap response type
type Overlap struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Visitors []string `json:"visitors"`
	Count    int      `json:"count"`
}

// OverlapList response type
type OverlapList struct {
	Overlaps []Overlap `json:"overlaps"`
}

// Stats response type
type Stats struct {
	PlayerID   string  `json:"player_id"`
	Visited    int     `json:"visited"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Country response type
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CountryList response type
type CountryList struct {
	Countries []Country `json:"countries"`
}

// ColourSuggestion response type
type ColourSuggestion struct {
	Colour string `json:"colour"`
}

// PaletteResult response type
type PaletteResult struct {
	Hexes []string `json:"hexes"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	if a.Guest {
		fmt.Println("Logged in as guest")
	} else {
		fmt.Printf("Logged in as: %s\n", a.Username)
	}
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.ID)
	fmt.Printf("Colour: %s\n", p.Colour)
	fmt.Printf("Created: %s\n", p.Created)
	if len(p.Visited) == 0 {
		fmt.Println("Visited: (none)")
	} else {
		fmt.Printf("Visited (%d): %s\n", len(p.Visited), strings.Join(p.Visited, ", "))
	}
}

func (o *Output) printPlayerList(l PlayerList) {
	if len(l.Players) == 0 {
		fmt.Println("No players")
		return
	}
	fmt.Printf("Players (%d):\n", len(l.Players))
	for _, p := range l.Players {
		fmt.Printf("  - %s  %s  (%d countries)\n", p.ID, p.Colour, len(p.Visited))
	}
}

func (o *Output) printMapState(m MapState) {
	if len(m.Colors) == 0 {
		fmt.Println("No countries visited yet")
		return
	}

	codes := make([]string, 0, len(m.Colors))
	for code := range m.Colors {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Printf("Coloured countries (%d):\n", len(codes))
	for _, code := range codes {
		fmt.Printf("  %s  %s\n", code, m.Colors[code])
	}
}

func (o *Output) printOverlapList(l OverlapList) {
	if len(l.Overlaps) == 0 {
		fmt.Println("No shared countries")
		return
	}
	fmt.Printf("Shared countries (%d):\n", len(l.Overlaps))
	for _, ov := range l.Overlaps {
		fmt.Printf("  %s (%s): %s\n", ov.Name, ov.Code, strings.Join(ov.Visitors, ", "))
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Player: %s\n", s.PlayerID)
	fmt.Printf("Visited: %d of %d countries\n", s.Visited, s.Total)
	fmt.Printf("Coverage: %.1f%%\n", s.Percentage)
}

func (o *Output) printCountryList(l CountryList) {
	fmt.Printf("Countries (%d):\n", len(l.Countries))
	for _, c := range l.Countries {
		fmt.Printf("  %s  %s\n", c.Code, c.Name)
	}
}

func (o *Output) printColourSuggestion(c ColourSuggestion) {
	fmt.Printf("Suggested colour: %s\n", c.Colour)
}

func (o *Output) printPaletteResult(p PaletteResult) {
	fmt.Printf("Palette (%d colours):\n", len(p.Hexes))
	for _, hex := range p.Hexes {
		fmt.Printf("  %s\n", hex)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
