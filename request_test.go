package pagegate

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestFromHTTPLoginForm(t *testing.T) {
	form := url.Values{}
	form.Set("login", "alice")
	form.Set("pass", "alice-pw")
	httpReq := httptest.NewRequest(http.MethodPost, "/site/page", strings.NewReader(form.Encode()))
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", "test-agent")

	req := FromHTTP(httpReq, "/site", "sid-1")

	if req.URL != "/site/page" {
		t.Fatalf("unexpected url %q", req.URL)
	}
	if !req.HasLogin() || req.Login != "alice" || req.Password != "alice-pw" {
		t.Fatalf("expected login submission, got %+v", req)
	}
	if req.Logout {
		t.Fatalf("unexpected logout flag")
	}
	if req.UserAgent != "test-agent" || req.Route != "/site" || req.SessionID != "sid-1" {
		t.Fatalf("unexpected client attributes %+v", req)
	}
}

func TestFromHTTPLogoutForm(t *testing.T) {
	form := url.Values{}
	form.Set("logout", "")
	httpReq := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req := FromHTTP(httpReq, "/", "sid-1")

	// The field's presence requests a logout even with an empty value.
	if !req.Logout {
		t.Fatalf("expected logout flag")
	}
	if req.HasLogin() {
		t.Fatalf("unexpected login")
	}
}

func TestFromHTTPGetCarriesNoActions(t *testing.T) {
	httpReq := httptest.NewRequest(http.MethodGet, "/page?login=alice&pass=pw", nil)

	req := FromHTTP(httpReq, "/", "sid-1")

	// Credentials only count from a form body, never from the query.
	if req.HasLogin() || req.Logout {
		t.Fatalf("expected no actions on GET, got %+v", req)
	}
}

func TestHasLoginRequiresBothFields(t *testing.T) {
	if (Request{Login: "alice"}).HasLogin() {
		t.Fatalf("login without password must not count")
	}
	if (Request{Password: "pw"}).HasLogin() {
		t.Fatalf("password without login must not count")
	}
}
