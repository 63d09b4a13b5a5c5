package web_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/jurdabos/countries-visited/internal/factory"
	"github.com/jurdabos/countries-visited/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()
	return wireWebTestServer(t, factory.NewTestApp())
}

// newContainerWebTestServer backs the test server with a container file
// in a temp directory
func newContainerWebTestServer(t *testing.T) *webTestServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visited.cvc")
	return wireWebTestServer(t, factory.NewContainerTestApp(path))
}

func wireWebTestServer(t *testing.T, app *factory.TestApp) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, app.LoadTestCountries())

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PlayerService:  app.PlayerService,
		MapviewService: app.MapviewService,
		GeoService:     app.GeoService,
		PaletteSet:     app.PaletteSet,
		Storage:        app.Storage,
		StaticDir:      "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// postFile makes a multipart POST request with a single file field
func (ts *webTestServer) postFile(path, field, filename string, data []byte) *httptest.ResponseRecorder {
	ts.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(ts.t, err)
	_, err = part.Write(data)
	require.NoError(ts.t, err)
	require.NoError(ts.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	ts.cookies.extract(rr)

	return rr
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// startGuestSession starts a guest session via the auth endpoint
func (ts *webTestServer) startGuestSession() {
	ts.t.Helper()
	rr := ts.post("/auth/guest", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after guest creation")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// registerUser registers an account through the form
func (ts *webTestServer) registerUser(username, password string) {
	ts.t.Helper()
	form := url.Values{
		"username":         {username},
		"password":         {password},
		"password_confirm": {password},
	}
	rr := ts.post("/register", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// addPlayer adds a map player through the form
func (ts *webTestServer) addPlayer(id, colour string) {
	ts.t.Helper()
	form := url.Values{"player_id": {id}, "colour": {colour}}
	rr := ts.post("/players", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after adding player")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
