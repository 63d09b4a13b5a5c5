package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/jurdabos/countries-visited/internal/dependencies/mocks"
	"github.com/jurdabos/countries-visited/internal/palette"
	"github.com/jurdabos/countries-visited/internal/services/auth"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/storage/containerfile"
	"github.com/jurdabos/countries-visited/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, store, mockClock, mockRandom, auth.DefaultConfig(), testPaletteSet())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// NewContainerTestApp creates a TestApp whose player data lives in a
// container file at path. Accounts still use the in-memory store.
func NewContainerTestApp(path string) *TestApp {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := containerfile.New(path, logger)
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, memory.New(), mockClock, mockRandom, auth.DefaultConfig(), testPaletteSet())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestCountries loads a small country catalogue for testing
func (t *TestApp) LoadTestCountries() error {
	return t.GeoService.LoadCountries([]geo.Country{
		{Name: "France", Code: "FR"},
		{Name: "Japan", Code: "JP"},
		{Name: "Spain", Code: "ES"},
		{Name: "United States of America", Code: "US"},
	})
}

// testPaletteSet is a small fixed palette for testing
func testPaletteSet() palette.Set {
	return palette.Set{
		Palettes: map[string][]string{
			"test": {"#16697a", "#7ebce6", "#a24936"},
		},
		ColorInfo: map[string]string{
			"#16697a": "Caribbean Current",
			"#7ebce6": "Maya Blue",
			"#a24936": "Chestnut",
		},
	}
}
