package pagegate

import "net/http"

// Request carries the already-parsed per-request inputs the guard needs.
// It is transport-agnostic; FromHTTP builds one from a net/http request.
type Request struct {
	// URL is the requested path, including the configured base URL.
	URL string

	// Client attributes feeding the session fingerprint.
	UserAgent  string
	RemoteAddr string
	Route      string
	SessionID  string

	// Login holds a submitted user name; a login is attempted only when
	// both Login and Password are present.
	Login    string
	Password string

	// Logout requests clearing the current session.
	Logout bool
}

// HasLogin reports whether the request carries a login submission.
func (r Request) HasLogin() bool {
	return r.Login != "" && r.Password != ""
}

// FromHTTP extracts guard inputs from an HTTP request. The login, pass
// and logout form fields mirror the conventional content-site login
// form. route identifies the serving endpoint and must be stable across
// requests of one logical session; sessionID is supplied by the host's
// session-id cookie or equivalent.
func FromHTTP(r *http.Request, route, sessionID string) Request {
	req := Request{
		URL:        r.URL.Path,
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
		Route:      route,
		SessionID:  sessionID,
	}
	if r.Method == http.MethodPost {
		req.Login = r.PostFormValue("login")
		req.Password = r.PostFormValue("pass")
		_, req.Logout = r.PostForm["logout"]
	}
	return req
}
