// Package containerfile implements the storage interface over the
// hierarchical binary container file.
package containerfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jurdabos/countries-visited/internal/container"
	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/storage"
)

// Container layout
const (
	playersGroup    = "players"
	palettesGroup   = "palettes"
	hexCodesDataset = "hex_codes"
	visitedDataset  = "visited"
	colourAttr      = "colour"
	createdAttr     = "created"
)

// Storage persists players in a container file. Every operation opens the
// container, performs one mutation and writes it back; a mutex serializes
// operations within the process. Concurrent writers from other processes
// are not coordinated.
type Storage struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

// New creates a container-file storage rooted at path
func New(path string, logger *slog.Logger) *Storage {
	return &Storage{
		path:   path,
		logger: logger,
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage     = (*Storage)(nil)
	_ storage.Snapshotter = (*Storage)(nil)
)

// Path returns the container file path
func (s *Storage) Path() string {
	return s.path
}

// Init creates the container file when it does not exist yet. An existing
// container, players and all, is left untouched; the palette dataset is
// only written when none has been stored before. Server startup calls
// this on every boot.
func (s *Storage) Init(ctx context.Context, paletteHexes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := container.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.createFresh(paletteHexes)
	}
	if err != nil {
		return fmt.Errorf("initializing container: %w", err)
	}

	f.RequireGroupAt(playersGroup)
	if len(paletteHexes) > 0 {
		g := f.RequireGroupAt(palettesGroup)
		if _, ok := g.Dataset(hexCodesDataset); !ok {
			if _, err := g.CreateDataset(hexCodesDataset, paletteHexes, container.DatasetOptions{Compressed: true}); err != nil {
				return fmt.Errorf("initializing container: %w", err)
			}
		}
	}
	return f.Save()
}

// Reset discards the container and starts over with an empty one
func (s *Storage) Reset(ctx context.Context, paletteHexes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createFresh(paletteHexes)
}

// createFresh writes a brand-new container, replacing any existing file.
// Callers must hold the mutex.
func (s *Storage) createFresh(paletteHexes []string) error {
	f, err := container.Create(s.path)
	if err != nil {
		wd, _ := os.Getwd()
		s.logger.Error("creating container file",
			slog.String("path", s.path),
			slog.String("working_dir", wd),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("initializing container: %w", err)
	}

	f.RequireGroupAt(playersGroup)
	if len(paletteHexes) > 0 {
		g := f.RequireGroupAt(palettesGroup)
		if _, err := g.CreateDataset(hexCodesDataset, paletteHexes, container.DatasetOptions{Compressed: true}); err != nil {
			return fmt.Errorf("initializing container: %w", err)
		}
	}
	return f.Save()
}

func (s *Storage) AddPlayer(ctx context.Context, id model.PlayerID, colour string, created time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrCreate()
	if err != nil {
		return err
	}

	g := f.RequireGroupAt(playersGroup + "/" + string(id))
	if _, ok := g.Dataset(visitedDataset); !ok {
		if _, err := g.CreateDataset(visitedDataset, nil, container.DatasetOptions{Growable: true}); err != nil {
			return err
		}
	}

	// colour and created are write-once: a second AddPlayer for the same
	// id must not restamp them
	if !g.HasAttr(colourAttr) {
		g.SetAttr(colourAttr, colour)
		g.SetAttr(createdAttr, created.UTC().Format(time.RFC3339))
	}
	return f.Save()
}

func (s *Storage) UpdateVisits(ctx context.Context, id model.PlayerID, codes []model.CountryCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, g, err := s.openPlayer(id)
	if err != nil {
		return err
	}

	ds, ok := g.Dataset(visitedDataset)
	if !ok {
		return model.ErrPlayerNotFound
	}

	// Full replace: resize to the new length, then overwrite
	values := make([]string, len(codes))
	for i, c := range codes {
		values[i] = string(c)
	}
	if err := ds.Resize(len(values)); err != nil {
		return err
	}
	if err := ds.SetAll(values); err != nil {
		return err
	}
	return f.Save()
}

func (s *Storage) ClearVisits(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, g, err := s.openPlayer(id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	ds, ok := g.Dataset(visitedDataset)
	if !ok {
		return nil
	}
	if err := ds.Resize(0); err != nil {
		return err
	}
	return f.Save()
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	players, ok := f.GroupAt(playersGroup)
	if !ok {
		return nil
	}
	if !players.DeleteGroup(string(id)) {
		return nil
	}
	return f.Save()
}

func (s *Storage) ListPlayers(ctx context.Context) (map[model.PlayerID]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[model.PlayerID]*model.Player)

	f, err := s.open()
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	players, ok := f.GroupAt(playersGroup)
	if !ok {
		return result, nil
	}

	for _, name := range players.GroupNames() {
		g, _ := players.Group(name)
		result[model.PlayerID(name)] = readPlayer(model.PlayerID(name), g)
	}
	return result, nil
}

func (s *Storage) PaletteHexes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g, ok := f.GroupAt(palettesGroup)
	if !ok {
		return nil, nil
	}
	ds, ok := g.Dataset(hexCodesDataset)
	if !ok {
		return nil, nil
	}
	return ds.Values(), nil
}

// Snapshot returns the container's on-disk image, creating an empty
// container first when none exists yet
func (s *Storage) Snapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.createFresh(nil); err != nil {
			return nil, err
		}
		raw, err = os.ReadFile(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}
	return raw, nil
}

// Restore replaces the container file with the uploaded image after
// checking that it decodes. The write goes through a temp file and
// rename, same as Save, so a bad upload never clobbers the current map.
func (s *Storage) Restore(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := container.Verify(data); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("restoring container: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("restoring container: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("restoring container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("restoring container: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("restoring container: %w", err)
	}
	return nil
}

func readPlayer(id model.PlayerID, g *container.Group) *model.Player {
	p := &model.Player{
		ID:      id,
		Visited: model.CountrySet{},
	}
	p.Colour, _ = g.Attr(colourAttr)
	if created, ok := g.Attr(createdAttr); ok {
		// Unparseable timestamps read as zero rather than failing the
		// whole listing
		p.Created, _ = time.Parse(time.RFC3339, created)
	}
	if ds, ok := g.Dataset(visitedDataset); ok {
		for _, v := range ds.Values() {
			if v != "" {
				p.Visited[model.CountryCode(v)] = struct{}{}
			}
		}
	}
	return p
}

func (s *Storage) open() (*container.File, error) {
	return container.Open(s.path)
}

// openOrCreate opens the container, creating an empty one (with its
// players group) when the file does not exist yet
func (s *Storage) openOrCreate() (*container.File, error) {
	f, err := container.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		f, err = container.Create(s.path)
		if err == nil {
			f.RequireGroupAt(playersGroup)
		}
	}
	return f, err
}

// openPlayer opens the container and resolves the player's group,
// translating every flavor of absence into ErrPlayerNotFound
func (s *Storage) openPlayer(id model.PlayerID) (*container.File, *container.Group, error) {
	f, err := s.open()
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	g, ok := f.GroupAt(playersGroup + "/" + string(id))
	if !ok {
		return nil, nil, model.ErrPlayerNotFound
	}
	return f, g, nil
}
