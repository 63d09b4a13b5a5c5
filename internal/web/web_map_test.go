package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHomePageEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".legend", "No players yet")
	assertContainsElement(t, doc, ".world table.map")
}

func TestAddPlayerShowsInLegend(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, `.players tr[data-player="alice"]`, "alice")
	assertContainsText(t, doc, `.players tr[data-player="alice"]`, "Caribbean Current")
}

func TestAddPlayerRejectsBadColour(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	form := url.Values{"player_id": {"alice"}, "colour": {"teal"}}
	rr := ts.post("/players", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Pick a colour from the palette")
	assertNotContainsElement(t, doc, `.players tr[data-player="alice"]`)
}

func TestUsedColourDisabledInPicker(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, `.add-player option[value="#16697a"][disabled]`)
	assertNotContainsElement(t, doc, `.add-player option[value="#7ebce6"][disabled]`)
}

func TestSaveVisitsColoursMap(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")

	form := url.Values{"codes": {"ES", "JP"}}
	rr := ts.post("/players/alice/visits", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, `.map td[data-code="ES"][style*="#16697a"]`)
	assertContainsElement(t, doc, `.map td[data-code="JP"][style*="#16697a"]`)
	assertNotContainsElement(t, doc, `.map td[data-code="FR"][style]`)
}

func TestPickerChecksCurrentVisits(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	ts.post("/players/alice/visits", url.Values{"codes": {"ES"}})

	rr := ts.get("/?player=alice")
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, `.picker input[value="ES"][checked]`)
	assertNotContainsElement(t, doc, `.picker input[value="JP"][checked]`)
}

func TestOverlapTableShowsSharedCountries(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	ts.addPlayer("bob", "#a24936")
	ts.post("/players/alice/visits", url.Values{"codes": {"ES", "FR"}})
	ts.post("/players/bob/visits", url.Values{"codes": {"ES"}})

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".overlaps", "Spain")
	assertContainsText(t, doc, ".overlaps", "alice, bob")
}

func TestOverlapTableHiddenWithoutSharing(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	ts.post("/players/alice/visits", url.Values{"codes": {"ES"}})

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".overlaps")
}

func TestClearVisits(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	ts.post("/players/alice/visits", url.Values{"codes": {"ES"}})

	rr := ts.post("/players/alice/clear", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, `.map td[data-code="ES"][style]`)
	assertContainsElement(t, doc, `.players tr[data-player="alice"]`)
}

func TestDeletePlayer(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")

	rr := ts.post("/players/alice/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, `.players tr[data-player="alice"]`)
}

func TestCoveragePercentage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	// 2 of the 4 test countries
	ts.post("/players/alice/visits", url.Values{"codes": {"ES", "JP"}})

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, `.players tr[data-player="alice"]`, "50.0%")
}

func TestMapFilePanelRequiresSession(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".map-file")

	ts.startGuestSession()
	rr = ts.get("/")
	doc = parseHTML(rr.Body)
	assertContainsElement(t, doc, `.map-file form[action="/map/reset"]`)
	assertContainsElement(t, doc, `.map-file form[action="/map/upload"]`)
	assertContainsElement(t, doc, `.map-file a[href="/map/download"]`)
}

func TestMapResetRemovesPlayers(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	ts.post("/players/alice/visits", url.Values{"codes": {"ES"}})

	rr := ts.post("/map/reset", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Started a new map")
	assertNotContainsElement(t, doc, `.players tr[data-player="alice"]`)
	assertNotContainsElement(t, doc, `.map td[data-code="ES"][style]`)
}

func TestMapDownloadNeedsFileBackend(t *testing.T) {
	// The in-memory backend has no container file to export
	ts := newWebTestServer(t)
	ts.startGuestSession()

	rr := ts.get("/map/download")
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "no map file")
}

func TestVisitsForUnknownPlayer(t *testing.T) {
	ts := newWebTestServer(t)
	ts.startGuestSession()

	rr := ts.post("/players/nobody/visits", url.Values{"codes": {"ES"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "No such player")
}

func TestMapDownloadUploadRoundTrip(t *testing.T) {
	ts := newContainerWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")
	ts.post("/players/alice/visits", url.Values{"codes": {"ES"}})

	// Export the map
	rr := ts.get("/map/download")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Disposition"), "visited.cvc")
	image := rr.Body.Bytes()
	require.NotEmpty(t, image)

	// Start fresh, then load the export back
	rr = ts.post("/map/reset", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.postFile("/map/upload", "container", "visited.cvc", image)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Map loaded")
	assertContainsText(t, doc, `.players tr[data-player="alice"]`, "alice")
	assertContainsElement(t, doc, `.map td[data-code="ES"][style*="#16697a"]`)
}

func TestMapUploadRejectsGarbage(t *testing.T) {
	ts := newContainerWebTestServer(t)
	ts.startGuestSession()

	ts.addPlayer("alice", "#16697a")

	rr := ts.postFile("/map/upload", "container", "junk.bin", []byte("not a map"))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "not a valid map container")
	// The existing map is untouched
	assertContainsElement(t, doc, `.players tr[data-player="alice"]`)
}
