// Package geo provides the country catalogue backing the picker and the
// overlap table, loaded from a GeoJSON FeatureCollection.
package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/jurdabos/countries-visited/internal/model"
)

// Some datasets mark features with no assigned ISO code this way
const noCode = "-99"

// Country is one selectable country
type Country struct {
	Name string
	Code model.CountryCode
}

// featureCollection mirrors the subset of GeoJSON we care about
type featureCollection struct {
	Features []struct {
		Properties struct {
			Name string `json:"name"`
			Code string `json:"ISO3166-1-Alpha-2"`
		} `json:"properties"`
	} `json:"features"`
}

// Service holds the loaded country list
type Service struct {
	mu        sync.RWMutex
	countries []Country
	byCode    map[model.CountryCode]Country
	loaded    bool
}

// New creates a new geo service
func New() *Service {
	return &Service{
		byCode: make(map[model.CountryCode]Country),
	}
}

// LoadFromFile loads countries from a GeoJSON file. Features without a
// real alpha-2 code are skipped.
func (s *Service) LoadFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading country data: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parsing country data: %w", err)
	}

	var countries []Country
	for _, f := range fc.Features {
		if f.Properties.Code == "" || f.Properties.Code == noCode {
			continue
		}
		countries = append(countries, Country{
			Name: f.Properties.Name,
			Code: model.CountryCode(f.Properties.Code),
		})
	}

	return s.load(countries)
}

// LoadCountries directly loads a country list (useful for testing)
func (s *Service) LoadCountries(countries []Country) error {
	return s.load(countries)
}

func (s *Service) load(countries []Country) error {
	sorted := make([]Country, len(countries))
	copy(sorted, countries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	byCode := make(map[model.CountryCode]Country, len(sorted))
	for _, c := range sorted {
		byCode[c.Code] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = sorted
	s.byCode = byCode
	s.loaded = true
	return nil
}

// Countries returns the catalogue sorted by name
func (s *Service) Countries() []Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countries
}

// Lookup finds a country by its alpha-2 code
func (s *Service) Lookup(code model.CountryCode) (Country, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byCode[code]
	return c, ok
}

// Name returns the display name for a code, or the code itself when unknown
func (s *Service) Name(code model.CountryCode) string {
	if c, ok := s.Lookup(code); ok {
		return c.Name
	}
	return string(code)
}

// Count returns the number of loaded countries
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.countries)
}

// IsLoaded returns whether country data has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
