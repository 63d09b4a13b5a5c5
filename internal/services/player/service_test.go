package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jurdabos/countries-visited/internal/dependencies/mocks"
	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random)
	s.ctx = context.Background()
}

// AddPlayer tests

func (s *ServiceSuite) TestAddPlayerSucceeds() {
	err := s.service.AddPlayer(s.ctx, "alice", "#7ebce6")
	s.Require().NoError(err)

	player, err := s.service.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("#7ebce6", player.Colour)
	s.Equal(s.clock.Now(), player.Created)
	s.Empty(player.Visited)
}

func (s *ServiceSuite) TestAddPlayerLowercasesColour() {
	err := s.service.AddPlayer(s.ctx, "alice", "#7EBCE6")
	s.Require().NoError(err)

	player, err := s.service.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("#7ebce6", player.Colour)
}

func (s *ServiceSuite) TestAddPlayerRejectsBadColour() {
	for _, colour := range []string{"", "7ebce6", "#7ebce", "#7ebce6a", "#gggggg", "blue"} {
		err := s.service.AddPlayer(s.ctx, "alice", colour)
		s.ErrorIs(err, model.ErrInvalidColour, "colour %q", colour)
	}
}

func (s *ServiceSuite) TestAddPlayerRejectsBlankID() {
	err := s.service.AddPlayer(s.ctx, "  ", "#7ebce6")
	s.ErrorIs(err, model.ErrInvalidPlayerID)
}

func (s *ServiceSuite) TestAddPlayerIsIdempotent() {
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#7ebce6"))
	s.Require().NoError(s.service.UpdateVisits(s.ctx, "alice", []model.CountryCode{"ES"}))

	s.clock.Advance(time.Hour)
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#ff0000"))

	player, err := s.service.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("#7ebce6", player.Colour)
	s.Equal(model.NewCountrySet("ES"), player.Visited)
}

// UpdateVisits tests

func (s *ServiceSuite) TestUpdateVisitsNormalizesCodes() {
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#7ebce6"))
	s.Require().NoError(s.service.UpdateVisits(s.ctx, "alice", []model.CountryCode{"es", " US ", "ES", ""}))

	player, err := s.service.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.NewCountrySet("ES", "US"), player.Visited)
}

func (s *ServiceSuite) TestUpdateVisitsReplaces() {
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#7ebce6"))
	s.Require().NoError(s.service.UpdateVisits(s.ctx, "alice", []model.CountryCode{"ES", "US"}))
	s.Require().NoError(s.service.UpdateVisits(s.ctx, "alice", []model.CountryCode{"JP"}))

	player, err := s.service.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.NewCountrySet("JP"), player.Visited)
}

func (s *ServiceSuite) TestUpdateVisitsUnknownPlayer() {
	err := s.service.UpdateVisits(s.ctx, "nobody", []model.CountryCode{"ES"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// ClearVisits / DeletePlayer tests

func (s *ServiceSuite) TestClearVisitsKeepsPlayer() {
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#7ebce6"))
	s.Require().NoError(s.service.UpdateVisits(s.ctx, "alice", []model.CountryCode{"ES"}))

	s.Require().NoError(s.service.ClearVisits(s.ctx, "alice"))

	player, err := s.service.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(player.Visited)
	s.Equal("#7ebce6", player.Colour)
}

func (s *ServiceSuite) TestDeletePlayer() {
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#7ebce6"))
	s.Require().NoError(s.service.DeletePlayer(s.ctx, "alice"))

	_, err := s.service.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Palette tests

func (s *ServiceSuite) TestInitStoresPalette() {
	hexes := []string{"#16697a", "#dbf4a7"}
	s.Require().NoError(s.service.Init(s.ctx, hexes))

	stored, err := s.service.PaletteHexes(s.ctx)
	s.Require().NoError(err)
	s.Equal(hexes, stored)
}

// SuggestColour tests

func (s *ServiceSuite) TestSuggestColourSkipsTakenColours() {
	s.Require().NoError(s.service.Init(s.ctx, []string{"#16697a", "#dbf4a7", "#a24936"}))
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#16697a"))

	// Index 1 of the free colours ["#dbf4a7", "#a24936"]
	s.random.QueueIntn(1)

	hex, err := s.service.SuggestColour(s.ctx)
	s.Require().NoError(err)
	s.Equal("#a24936", hex)
}

func (s *ServiceSuite) TestSuggestColourExhausted() {
	s.Require().NoError(s.service.Init(s.ctx, []string{"#16697a"}))
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#16697a"))

	_, err := s.service.SuggestColour(s.ctx)
	s.ErrorIs(err, ErrPaletteExhausted)
}

func (s *ServiceSuite) TestUsedColours() {
	s.Require().NoError(s.service.AddPlayer(s.ctx, "alice", "#7ebce6"))
	s.Require().NoError(s.service.AddPlayer(s.ctx, "bob", "#A24936"))

	used, err := s.service.UsedColours(s.ctx)
	s.Require().NoError(err)
	s.True(used["#7ebce6"])
	s.True(used["#a24936"])
	s.False(used["#16697a"])
}
