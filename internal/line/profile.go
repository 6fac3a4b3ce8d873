package line

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/themultilangtranslator-png/multilang-translator/internal/cache"
)

// fallbackDisplayName is used when there is no user id to mask.
const fallbackDisplayName = "Unknown"

// ProfileAPI is the slice of Client the resolver needs.
type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

// ProfileResolver resolves platform user ids to display names through its own
// TTL cache. Lookup failures never propagate; callers get a masked form of the
// user id instead.
type ProfileResolver struct {
	api    ProfileAPI
	store  *cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

func NewProfileResolver(api ProfileAPI, store *cache.Store, ttl time.Duration, logger zerolog.Logger) *ProfileResolver {
	return &ProfileResolver{
		api:    api,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// DisplayName resolves userID to a display name. Cache first, then one
// external lookup; only successful lookups are cached.
func (r *ProfileResolver) DisplayName(ctx context.Context, userID string) string {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return fallbackDisplayName
	}

	if cached, ok := r.store.Get(trimmed); ok {
		if profile, isProfile := cached.(*Profile); isProfile && profile.DisplayName != "" {
			return profile.DisplayName
		}
	}

	if r.api == nil {
		return maskUserID(trimmed)
	}

	profile, err := r.api.GetProfile(ctx, trimmed)
	if err != nil {
		r.logger.Debug().Err(err).Str("user_id", trimmed).Msg("profile lookup failed")
		return maskUserID(trimmed)
	}
	if profile == nil || strings.TrimSpace(profile.DisplayName) == "" {
		return maskUserID(trimmed)
	}

	r.store.Set(trimmed, profile, r.ttl)
	return profile.DisplayName
}

// maskUserID keeps a short recognizable prefix of the id so operators can
// still correlate logs without exposing the full identifier in chat output.
func maskUserID(id string) string {
	const visible = 6
	if len(id) <= visible {
		return id
	}
	return id[:visible] + "..."
}
