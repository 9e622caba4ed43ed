package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/devmarvs/pagegate/credential"
)

// PlainVerifier accepts hashes of the form "plain:" + password. Tests
// use it instead of bcrypt to keep credential searches cheap.
type PlainVerifier struct{}

// Verify reports whether hash is the plain encoding of password.
func (PlainVerifier) Verify(password, hash string) bool {
	return hash == PlainHash(password)
}

// PlainHash builds a hash PlainVerifier accepts.
func PlainHash(password string) string {
	return "plain:" + password
}

// Tree returns the canonical test tree:
//
//	admin
//	team/alice
//	team/bob
//	team/interns/carol
func Tree() credential.Group {
	return credential.Group{
		"admin": credential.User(PlainHash("root-pw")),
		"team": credential.Group{
			"alice": credential.User(PlainHash("alice-pw")),
			"bob":   credential.User(PlainHash("bob-pw")),
			"interns": credential.Group{
				"carol": credential.User(PlainHash("carol-pw")),
			},
		},
	}
}

// LoginForm builds a POST login submission for target.
func LoginForm(t *testing.T, target, login, pass string) *http.Request {
	t.Helper()
	form := url.Values{}
	form.Set("login", login)
	form.Set("pass", pass)
	return formRequest(target, form)
}

// LogoutForm builds a POST logout submission for target.
func LogoutForm(t *testing.T, target string) *http.Request {
	t.Helper()
	form := url.Values{}
	form.Set("logout", "1")
	return formRequest(target, form)
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// Do executes a request against a handler.
func Do(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// MustStatus asserts the response status code.
func MustStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d", status, rec.Code)
	}
}
