// Package palette loads color palette definitions and provides the color
// naming and blending helpers used when rendering the map.
package palette

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// DefaultPath is where the palette definition ships relative to the
// working directory
const DefaultPath = "data/palettes.json"

// Shade-position cutoffs for derived names. These are cosmetic: positions
// at or below the dark cutoff read "Dark", at or above the light cutoff
// "Light", everything between "Medium".
const (
	darkShadeMax  = 3
	lightShadeMin = 7
)

// Entry is a single color within a palette definition
type Entry struct {
	Hex      string `json:"hex"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type paletteDef struct {
	PaletteName string  `json:"paletteName"`
	Colors      []Entry `json:"colors"`
}

type document struct {
	Palettes []paletteDef `json:"palettes"`
}

// Set is the loaded palette data: every palette's ordered hex codes plus a
// side mapping from hex code to a descriptive name.
type Set struct {
	// Palettes maps palette name to its ordered hex codes
	Palettes map[string][]string
	// ColorInfo maps each hex code to a descriptive name
	ColorInfo map[string]string
}

func emptySet() Set {
	return Set{
		Palettes:  make(map[string][]string),
		ColorInfo: make(map[string]string),
	}
}

// Load reads a palette definition from path (DefaultPath when empty). A
// missing, unreadable or malformed file yields an empty Set, never an
// error: the UI treats "no palettes" as a valid state.
func Load(path string, logger *slog.Logger) Set {
	if path == "" {
		path = DefaultPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		wd, _ := os.Getwd()
		logger.Warn("palette definition not readable",
			slog.String("path", path),
			slog.String("working_dir", wd),
			slog.String("error", err.Error()),
		)
		return emptySet()
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		wd, _ := os.Getwd()
		logger.Warn("palette definition is not valid JSON",
			slog.String("path", path),
			slog.String("working_dir", wd),
			slog.String("error", err.Error()),
		)
		return emptySet()
	}

	set := emptySet()
	for _, p := range doc.Palettes {
		name := p.PaletteName
		if name == "" {
			name = "Unknown"
		}

		hexes := make([]string, 0, len(p.Colors))
		for _, entry := range p.Colors {
			if entry.Hex == "" {
				continue
			}
			hex := normalizeHex(entry.Hex)
			hexes = append(hexes, hex)
			if _, ok := set.ColorInfo[hex]; !ok {
				set.ColorInfo[hex] = entryName(name, hex, entry)
			}
		}
		set.Palettes[name] = hexes
	}
	return set
}

// entryName picks the descriptive name for a palette entry: the explicit
// name when one is given, a position-derived shade label for graduated
// palettes, or a generic fallback.
func entryName(paletteName, hex string, entry Entry) string {
	if entry.Name != "" && !strings.HasPrefix(entry.Name, paletteName) {
		return entry.Name
	}

	if strings.Contains(paletteName, "shades") {
		base := shadeBase(paletteName)
		switch {
		case entry.Position <= darkShadeMax:
			return "Dark " + base
		case entry.Position >= lightShadeMin:
			return "Light " + base
		default:
			return "Medium " + base
		}
	}

	return "Color " + hex
}

// shadeBase turns "caribbean_current_shades" into "Caribbean"
func shadeBase(paletteName string) string {
	base := paletteName
	if i := strings.IndexByte(base, '_'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return base
	}
	return strings.ToUpper(base[:1]) + strings.ToLower(base[1:])
}

func normalizeHex(hex string) string {
	if !strings.HasPrefix(hex, "#") {
		return "#" + hex
	}
	return hex
}

// Choice is a selectable color with a display label
type Choice struct {
	Hex   string
	Label string
}

// AllColors flattens the set into a label-sorted list of color choices for
// the player-creation picker.
func (s Set) AllColors() []Choice {
	seen := make(map[string]struct{})
	var choices []Choice

	for _, hexes := range s.Palettes {
		for _, hex := range hexes {
			if _, ok := seen[hex]; ok {
				continue
			}
			seen[hex] = struct{}{}

			name, ok := s.ColorInfo[hex]
			if !ok {
				name = hex
			}
			choices = append(choices, Choice{
				Hex:   hex,
				Label: fmt.Sprintf("%s (%s)", name, hex),
			})
		}
	}

	sort.Slice(choices, func(i, j int) bool { return choices[i].Label < choices[j].Label })
	return choices
}

// Hexes flattens the set into the ordered hex codes of every palette,
// palettes sorted by name. Used to seed the container's palette dataset.
func (s Set) Hexes() []string {
	names := make([]string, 0, len(s.Palettes))
	for name := range s.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)

	var hexes []string
	for _, name := range names {
		hexes = append(hexes, s.Palettes[name]...)
	}
	return hexes
}
