package lodgectx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// LodgeContextKey is the request context key for the active lodge ID.
type LodgeContextKey struct{}

// WithLodgeID stores the lodge ID in the context.
func WithLodgeID(ctx context.Context, lodgeID snowflake.ID) context.Context {
	return context.WithValue(ctx, LodgeContextKey{}, lodgeID)
}

// LodgeIDFromContext returns the lodge ID from context, if set.
func LodgeIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(LodgeContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
