// Package ctxutil carries the request-scoped identity of an API call: the
// authenticated user and the request ID assigned at the edge.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type (
	userKey    struct{}
	requestKey struct{}
)

// Log attribute keys shared by every component that reports request identity.
const (
	AttrRequestID = "request_id"
	AttrUserID    = "user_id"
)

// WithUserID marks the context as acting on behalf of the given user.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFromCtx reports the user the call acts for. A missing or nil ID
// yields false, so services can map it straight to ErrUnauthorized.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, _ := ctx.Value(userKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, id)
}

// RequestIDFromCtx returns the request ID, or "" outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestKey{}).(string)
	return id
}

// LogAttrs returns the identity attributes present in ctx, request ID first.
func LogAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, slog.String(AttrRequestID, id))
	}
	if id, ok := UserIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String(AttrUserID, id.String()))
	}
	return attrs
}
