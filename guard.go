package pagegate

import (
	"context"
	"log/slog"

	"github.com/devmarvs/pagegate/apperr"
	"github.com/devmarvs/pagegate/credential"
	"github.com/devmarvs/pagegate/rights"
	"github.com/devmarvs/pagegate/session"
)

// Guard is the authorization facade: it resolves each request to an
// identity via the session store and decides per-URL access from the
// configured rights rules.
type Guard struct {
	users     credential.Group
	store     session.Store
	verifier  credential.Verifier
	evaluator rights.Evaluator
	logger    *slog.Logger
}

// Option customizes a Guard.
type Option func(*Guard)

// WithVerifier swaps the password verifier. The default is bcrypt.
func WithVerifier(verifier credential.Verifier) Option {
	return func(g *Guard) {
		g.verifier = verifier
	}
}

// WithLogger attaches a logger for auth events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// New builds a Guard over a user tree, ordered rights rules and a
// session store.
func New(baseURL string, users credential.Group, rules rights.Rules, store session.Store, options ...Option) *Guard {
	guard := &Guard{
		users:     users,
		store:     store,
		verifier:  credential.Bcrypt{},
		evaluator: rights.NewEvaluator(baseURL, rules),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(guard)
	}
	return guard
}

// Authenticate resolves the request's identity. Exactly one branch
// runs, in strict priority order: logout, then login, then session
// restore, then anonymous. Only the first three touch the session
// store. Store failures surface as errors; a failed login or a missing
// session is an ordinary anonymous result.
func (g *Guard) Authenticate(ctx context.Context, req Request) (Identity, error) {
	fp := Fingerprint(req)

	if req.Logout {
		if err := g.store.Delete(ctx, fp); err != nil {
			return Anonymous, apperr.Internal("session delete failed", err)
		}
		g.logger.Debug("logout", "fingerprint", fp)
		return Anonymous, nil
	}

	if req.HasLogin() {
		matches := g.users.Search(req.Login, req.Password, g.verifier)
		if len(matches) == 0 {
			// A prior session, if any, is left alone by policy.
			g.logger.Debug("login failed", "login", req.Login)
			return Anonymous, nil
		}
		match := matches[0]
		if err := g.store.Set(ctx, fp, session.Record{Path: match.Path, Hash: match.Hash}); err != nil {
			return Anonymous, apperr.Internal("session write failed", err)
		}
		g.logger.Info("login", "identity", match.Path)
		return Identity(match.Path), nil
	}

	record, ok, err := g.store.Get(ctx, fp)
	if err != nil {
		return Anonymous, apperr.Internal("session read failed", err)
	}
	if !ok {
		return Anonymous, nil
	}

	hash, found := g.users.Lookup(record.Path)
	if !found || hash != record.Hash {
		// The credential was rotated or removed since login.
		if err := g.store.Delete(ctx, fp); err != nil {
			return Anonymous, apperr.Internal("session delete failed", err)
		}
		g.logger.Info("stale session evicted", "identity", record.Path)
		return Anonymous, nil
	}

	// Defensive refresh of the confirmed record.
	if err := g.store.Set(ctx, fp, record); err != nil {
		return Anonymous, apperr.Internal("session write failed", err)
	}
	return Identity(record.Path), nil
}

// Authorize reports whether identity may access url. url includes the
// configured base URL prefix.
func (g *Guard) Authorize(identity Identity, url string) bool {
	return g.evaluator.IsAuthorized(string(identity), url)
}

// FilterAuthorized returns the subset of urls that identity may access,
// in input order. Hosts use it to hide unauthorized pages from
// listings.
func (g *Guard) FilterAuthorized(identity Identity, urls []string) []string {
	allowed := make([]string, 0, len(urls))
	for _, url := range urls {
		if g.Authorize(identity, url) {
			allowed = append(allowed, url)
		}
	}
	return allowed
}

// PresentationInfo splits identity into username and group for the
// host's templates.
func (g *Guard) PresentationInfo(identity Identity) Presentation {
	return PresentationInfo(identity)
}
