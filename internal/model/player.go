package model

import (
	"sort"
	"time"
)

// PlayerID uniquely identifies a player within a container
type PlayerID string

// CountryCode is an ISO-3166-1 alpha-2 country code
type CountryCode string

// CountrySet is an unordered collection of country codes
type CountrySet map[CountryCode]struct{}

// NewCountrySet builds a set from the given codes
func NewCountrySet(codes ...CountryCode) CountrySet {
	s := make(CountrySet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether the set holds the given code
func (s CountrySet) Contains(code CountryCode) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the set's codes in sorted order
func (s CountrySet) Codes() []CountryCode {
	codes := make([]CountryCode, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Player is a map participant with an assigned display colour and the
// countries they have marked as visited
type Player struct {
	ID      PlayerID
	Colour  string // "#rrggbb", assigned at creation (write-once)
	Created time.Time
	Visited CountrySet
}

// User holds a registered account's credential and lifecycle metadata
type User struct {
	Username     string
	PasswordHash string // bcrypt hash
	Created      time.Time
	LastLogin    *time.Time // nil until first login
}
