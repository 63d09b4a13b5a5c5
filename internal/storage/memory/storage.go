// Package memory provides in-memory implementations of the storage
// interfaces, used as the default backend and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/storage"
)

type playerEntry struct {
	colour  string
	created time.Time
	visited []model.CountryCode
}

// Storage is an in-memory implementation of both the player Storage and
// the UserStore interfaces
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*playerEntry
	palette []string
	users   map[string]*model.User
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*playerEntry),
		users:   make(map[string]*model.User),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage   = (*Storage)(nil)
	_ storage.UserStore = (*Storage)(nil)
)

// Player operations

// Init keeps any existing players; the palette is stored only when none
// has been set yet, mirroring the container backend's startup behaviour
func (s *Storage) Init(ctx context.Context, paletteHexes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.palette) == 0 {
		s.palette = append([]string(nil), paletteHexes...)
	}
	return nil
}

// Reset discards all players and installs the given palette
func (s *Storage) Reset(ctx context.Context, paletteHexes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[model.PlayerID]*playerEntry)
	s.palette = append([]string(nil), paletteHexes...)
	return nil
}

func (s *Storage) AddPlayer(ctx context.Context, id model.PlayerID, colour string, created time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; ok {
		// Attributes are write-once; re-adding keeps existing data
		return nil
	}
	s.players[id] = &playerEntry{
		colour:  colour,
		created: created.UTC().Truncate(time.Second),
	}
	return nil
}

func (s *Storage) UpdateVisits(ctx context.Context, id model.PlayerID, codes []model.CountryCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p.visited = append([]model.CountryCode(nil), codes...)
	return nil
}

func (s *Storage) ClearVisits(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[id]; ok {
		p.visited = nil
	}
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) (map[model.PlayerID]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[model.PlayerID]*model.Player, len(s.players))
	for id, entry := range s.players {
		result[id] = &model.Player{
			ID:      id,
			Colour:  entry.colour,
			Created: entry.created,
			Visited: model.NewCountrySet(entry.visited...),
		}
	}
	return result, nil
}

func (s *Storage) PaletteHexes(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.palette...), nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *Storage) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	t := at.UTC()
	u.LastLogin = &t
	return nil
}
