package storage

import (
	"context"
	"time"

	"github.com/jurdabos/countries-visited/internal/model"
)

// Storage defines the persistence interface for per-player visited-country
// state. Implementations mirror the container file's semantics: attributes
// are write-once, visited lists are wholesale-replaced, and a missing
// container reads as "no players".
type Storage interface {
	// Init makes the container ready for use: a missing container is
	// created empty, an existing one is left untouched. When paletteHexes
	// is non-empty and no palette has been stored yet, the codes are
	// saved as a read-only palette dataset. Safe to call on every
	// startup.
	Init(ctx context.Context, paletteHexes []string) error

	// Reset replaces the container with a fresh, empty one, discarding
	// all players. When paletteHexes is non-empty the codes are stored
	// as the new palette dataset.
	Reset(ctx context.Context, paletteHexes []string) error

	// AddPlayer creates the player's node if absent and stamps its
	// colour and created attributes on first creation. Calling it again
	// for an existing player leaves the node, its attributes and its
	// visited list untouched.
	AddPlayer(ctx context.Context, id model.PlayerID, colour string, created time.Time) error

	// UpdateVisits replaces the player's visited list wholesale
	UpdateVisits(ctx context.Context, id model.PlayerID, codes []model.CountryCode) error

	// ClearVisits empties the player's visited list, preserving the node
	// and its attributes. A missing player is a no-op.
	ClearVisits(ctx context.Context, id model.PlayerID) error

	// DeletePlayer removes the player's node entirely. A missing player
	// is a no-op.
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// ListPlayers returns every stored player. A missing container or
	// players group yields an empty map, not an error.
	ListPlayers(ctx context.Context) (map[model.PlayerID]*model.Player, error)

	// PaletteHexes returns the stored palette codes, empty when none
	// were saved.
	PaletteHexes(ctx context.Context) ([]string, error)
}

// Snapshotter is implemented by backends whose full contents can be
// exported as a container file image and replaced from one. Backends
// without a durable file representation may omit it.
type Snapshotter interface {
	// Snapshot returns the container's current on-disk image
	Snapshot(ctx context.Context) ([]byte, error)

	// Restore replaces the container's contents with the given image.
	// Data that does not decode as a container is rejected and the
	// existing contents are kept.
	Restore(ctx context.Context, data []byte) error
}

// UserStore defines the persistence interface for account credentials and
// session metadata, kept separate from player state: players live in the
// container file, users in a key-value store.
type UserStore interface {
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	TouchLastLogin(ctx context.Context, username string, at time.Time) error
}
