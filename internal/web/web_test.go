package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/tkdr/teamgate/internal/factory"
	"github.com/tkdr/teamgate/internal/services/session"
	"github.com/tkdr/teamgate/internal/testutil"
	"github.com/tkdr/teamgate/internal/web"
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

	app := factory.NewTestApp()
	t.Cleanup(app.Close)

	router := web.NewRouter(web.RouterConfig{
		Logger:        testutil.NopLogger(),
		Sessions:      app.Sessions,
		SessionCodec:  app.SessionCodec,
		SessionTTL:    session.DefaultConfig().TTL,
		Authenticator: app.Authenticator,
		Membership:    app.Membership,
		Random:        app.Random,
		AdminID:       app.AdminID,
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

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
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
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies[session.CookieName]
	return ok
}

// Helper functions for common test operations

// login runs the OAuth flow against the fake provider and leaves the
// browser on the callback redirect target
func (ts *webTestServer) login(returnURL string) *httptest.ResponseRecorder {
	ts.t.Helper()

	rr := ts.get("/auth?returnUrl=" + url.QueryEscape(returnURL))
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect to the provider")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")

	// Pull the anti-forgery state out of the provider URL
	providerURL, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(ts.t, err)
	state := providerURL.Query().Get("state")
	require.NotEmpty(ts.t, state, "Expected state parameter in provider URL")

	// Simulate the provider sending the browser back with a code
	rr = ts.get("/callback?state=" + url.QueryEscape(state) + "&code=test-code")
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after callback")
	return rr
}

// verify submits the identity form
func (ts *webTestServer) verify(nationalID, firstName, lastName, birthYear string) *httptest.ResponseRecorder {
	ts.t.Helper()
	form := url.Values{
		"national_id": {nationalID},
		"first_name":  {firstName},
		"last_name":   {lastName},
		"birth_year":  {birthYear},
	}
	return ts.post("/verify/gov", form)
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
