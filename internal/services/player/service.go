// Package player wraps the storage layer with validation and timestamping
// for map players.
package player

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jurdabos/countries-visited/internal/dependencies/clock"
	"github.com/jurdabos/countries-visited/internal/dependencies/random"
	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/storage"
)

var colourPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ErrPaletteExhausted is returned when every palette colour is taken
var ErrPaletteExhausted = errors.New("no free palette colours left")

// Service manages player records and their visited-country lists
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Init prepares the backing store, seeding the palette on first use.
// Existing player data survives; safe to call on every startup.
func (s *Service) Init(ctx context.Context, paletteHexes []string) error {
	return s.storage.Init(ctx, paletteHexes)
}

// Reset starts a new map: all players are discarded and the palette is
// written fresh
func (s *Service) Reset(ctx context.Context, paletteHexes []string) error {
	return s.storage.Reset(ctx, paletteHexes)
}

// AddPlayer registers a player with their chosen colour. Re-adding an
// existing player leaves its colour, creation time and visits untouched.
func (s *Service) AddPlayer(ctx context.Context, id model.PlayerID, colour string) error {
	if strings.TrimSpace(string(id)) == "" {
		return model.ErrInvalidPlayerID
	}
	if !colourPattern.MatchString(colour) {
		return fmt.Errorf("%w: %q", model.ErrInvalidColour, colour)
	}
	return s.storage.AddPlayer(ctx, id, strings.ToLower(colour), s.clock.Now())
}

// UpdateVisits replaces a player's visited-country list wholesale
func (s *Service) UpdateVisits(ctx context.Context, id model.PlayerID, codes []model.CountryCode) error {
	return s.storage.UpdateVisits(ctx, id, normalizeCodes(codes))
}

// ClearVisits empties a player's visited-country list
func (s *Service) ClearVisits(ctx context.Context, id model.PlayerID) error {
	return s.storage.ClearVisits(ctx, id)
}

// DeletePlayer removes a player and their visits
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.storage.DeletePlayer(ctx, id)
}

// ListPlayers returns all players keyed by id
func (s *Service) ListPlayers(ctx context.Context) (map[model.PlayerID]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// GetPlayer returns a single player by id
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	player, ok := players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// PaletteHexes returns the palette stored alongside the player data
func (s *Service) PaletteHexes(ctx context.Context) ([]string, error) {
	return s.storage.PaletteHexes(ctx)
}

// UsedColours returns the colours already claimed by players
func (s *Service) UsedColours(ctx context.Context) (map[string]bool, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, len(players))
	for _, p := range players {
		used[strings.ToLower(p.Colour)] = true
	}
	return used, nil
}

// SuggestColour picks a random free colour from the stored palette
func (s *Service) SuggestColour(ctx context.Context) (string, error) {
	hexes, err := s.storage.PaletteHexes(ctx)
	if err != nil {
		return "", err
	}

	used, err := s.UsedColours(ctx)
	if err != nil {
		return "", err
	}

	free := make([]string, 0, len(hexes))
	for _, hex := range hexes {
		if !used[strings.ToLower(hex)] {
			free = append(free, strings.ToLower(hex))
		}
	}
	if len(free) == 0 {
		return "", ErrPaletteExhausted
	}

	return free[s.random.Intn(len(free))], nil
}

// normalizeCodes uppercases, trims and dedups country codes, dropping blanks
func normalizeCodes(codes []model.CountryCode) []model.CountryCode {
	seen := make(map[model.CountryCode]struct{}, len(codes))
	out := make([]model.CountryCode, 0, len(codes))
	for _, code := range codes {
		c := model.CountryCode(strings.ToUpper(strings.TrimSpace(string(code))))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
