// Package ownerctx carries the owning account id through request
// contexts. Authentication itself lives outside this service; handlers
// only propagate the already-resolved owner.
package ownerctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey struct{}

// WithOwnerID returns a context carrying the owning account id.
func WithOwnerID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// OwnerIDFromContext extracts the owning account id, if present.
func OwnerIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(contextKey{}).(snowflake.ID)
	return id, ok
}
