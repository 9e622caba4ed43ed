package otel

import (
	"context"

	"github.com/devmarvs/pagegate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Guard wraps a pagegate.Guard with OpenTelemetry spans around its
// operations. Spans never record submitted credentials.
type Guard struct {
	guard  *pagegate.Guard
	tracer trace.Tracer
}

// NewGuard creates a traced guard.
func NewGuard(guard *pagegate.Guard, name string) *Guard {
	if name == "" {
		name = "pagegate"
	}
	return &Guard{guard: guard, tracer: otel.Tracer(name)}
}

// Authenticate resolves the request identity inside a span.
func (g *Guard) Authenticate(ctx context.Context, req pagegate.Request) (pagegate.Identity, error) {
	ctx, span := g.tracer.Start(ctx, "pagegate.Authenticate")
	defer span.End()

	identity, err := g.guard.Authenticate(ctx, req)

	span.SetAttributes(
		attribute.String("auth.url", req.URL),
		attribute.Bool("auth.login_attempt", req.HasLogin()),
		attribute.Bool("auth.logout", req.Logout),
		attribute.Bool("auth.authenticated", !identity.IsAnonymous()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return identity, err
}

// Authorize records the access decision for url inside a span.
func (g *Guard) Authorize(ctx context.Context, identity pagegate.Identity, url string) bool {
	_, span := g.tracer.Start(ctx, "pagegate.Authorize")
	defer span.End()

	allowed := g.guard.Authorize(identity, url)
	span.SetAttributes(
		attribute.String("auth.url", url),
		attribute.Bool("auth.anonymous", identity.IsAnonymous()),
		attribute.Bool("auth.allowed", allowed),
	)
	return allowed
}
