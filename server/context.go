package server

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/reoring/catalogpatch/catalog"
)

// ctxKey is a typed context key; the generic parameter keeps keys for
// different value types distinct.
type ctxKey[T any] struct{}

func contextWith[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKey[T]{}, v)
}

func fromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKey[T]{}).(T)
	return v, ok
}

// CommandFromContext returns the patch command prepared by the request
// middleware.
func CommandFromContext(ctx context.Context) (catalog.Command, bool) {
	return fromContext[catalog.Command](ctx)
}

// VersionFromContext returns the API version the request was routed to.
func VersionFromContext(ctx context.Context) (*semver.Version, bool) {
	return fromContext[*semver.Version](ctx)
}
