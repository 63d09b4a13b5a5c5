package mapview

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jurdabos/countries-visited/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func player(colour string, codes ...model.CountryCode) *model.Player {
	return &model.Player{Colour: colour, Visited: model.NewCountrySet(codes...)}
}

// CountryColors tests

func (s *ServiceSuite) TestCountryColorsSingleVisitor() {
	players := map[model.PlayerID]*model.Player{
		"alice": player("#7ebce6", "ES", "US"),
	}

	colors := s.service.CountryColors(players)
	s.Equal("#7ebce6", colors["ES"])
	s.Equal("#7ebce6", colors["US"])
	s.Len(colors, 2)
}

func (s *ServiceSuite) TestCountryColorsBlendsOverlap() {
	players := map[model.PlayerID]*model.Player{
		"alice": player("#ff0000", "ES"),
		"bob":   player("#0000ff", "ES"),
	}

	colors := s.service.CountryColors(players)
	s.Equal("#800080", colors["ES"])
}

func (s *ServiceSuite) TestCountryColorsUnvisitedOmitted() {
	colors := s.service.CountryColors(map[model.PlayerID]*model.Player{
		"alice": player("#7ebce6"),
	})
	s.Empty(colors)
}

// Overlaps tests

func (s *ServiceSuite) TestOverlapsOnlyMultiVisitor() {
	players := map[model.PlayerID]*model.Player{
		"alice": player("#ff0000", "ES", "US"),
		"bob":   player("#0000ff", "ES"),
	}

	overlaps := s.service.Overlaps(players)
	s.Require().Len(overlaps, 1)
	s.Equal(model.CountryCode("ES"), overlaps[0].Code)
	s.Equal([]model.PlayerID{"alice", "bob"}, overlaps[0].Visitors)
	s.Equal(2, overlaps[0].Count)
}

func (s *ServiceSuite) TestOverlapsSortedByCountThenCode() {
	players := map[model.PlayerID]*model.Player{
		"alice": player("#ff0000", "ES", "FR", "JP"),
		"bob":   player("#00ff00", "ES", "FR", "JP"),
		"carol": player("#0000ff", "FR"),
	}

	overlaps := s.service.Overlaps(players)
	s.Require().Len(overlaps, 3)
	// FR has three visitors, ES and JP two each in code order
	s.Equal(model.CountryCode("FR"), overlaps[0].Code)
	s.Equal(3, overlaps[0].Count)
	s.Equal(model.CountryCode("ES"), overlaps[1].Code)
	s.Equal(model.CountryCode("JP"), overlaps[2].Code)
}

func (s *ServiceSuite) TestOverlapsEmptyWhenNoSharing() {
	players := map[model.PlayerID]*model.Player{
		"alice": player("#ff0000", "ES"),
		"bob":   player("#0000ff", "US"),
	}
	s.Empty(s.service.Overlaps(players))
}

// PlayerStats tests

func (s *ServiceSuite) TestPlayerStats() {
	stats := s.service.PlayerStats(player("#7ebce6", "ES", "US"), 8)
	s.Equal(2, stats.Visited)
	s.Equal(8, stats.Total)
	s.InDelta(25.0, stats.Percentage, 0.001)
}

func (s *ServiceSuite) TestPlayerStatsZeroTotal() {
	stats := s.service.PlayerStats(player("#7ebce6", "ES"), 0)
	s.Equal(1, stats.Visited)
	s.Zero(stats.Percentage)
}
