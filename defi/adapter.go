package defi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cryptotron-backend/cache"
)

// Adapter wraps one yield source with retention rules, a TTL cache and a
// deterministic fallback catalog. Within the TTL, repeated fetches for the
// same filter return the stored list unchanged.
type Adapter struct {
	source   Source
	fallback []YieldOpportunity
	cache    cache.Cache
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAdapter(source Source, fallback []YieldOpportunity, c cache.Cache, ttl time.Duration, log zerolog.Logger) *Adapter {
	return &Adapter{
		source:   source,
		fallback: fallback,
		cache:    c,
		ttl:      ttl,
		log:      log.With().Str("component", "yield-adapter").Str("source", source.Name()).Logger(),
	}
}

// Fetch returns the retained opportunities for an optional protocol filter
// (case-insensitive substring match on the protocol name). Upstream failures
// fall back to the built-in catalog; the raw transport error never reaches
// the caller.
func (a *Adapter) Fetch(ctx context.Context, protocolFilter string) []YieldOpportunity {
	key := a.cacheKey(protocolFilter)
	if raw, ok := a.cache.Get(ctx, key); ok {
		var opps []YieldOpportunity
		if err := json.Unmarshal(raw, &opps); err == nil {
			return opps
		}
	}

	opps, err := a.source.Fetch(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("yield source failed, serving fallback catalog")
		opps = make([]YieldOpportunity, len(a.fallback))
		copy(opps, a.fallback)
	}

	opps = retain(opps)
	opps = filterByProtocol(opps, protocolFilter)

	if raw, err := json.Marshal(opps); err == nil {
		a.cache.Set(ctx, key, raw, a.ttl)
	}
	return opps
}

func (a *Adapter) cacheKey(protocolFilter string) string {
	filter := "all"
	if protocolFilter != "" {
		filter = strings.ToLower(protocolFilter)
	}
	return fmt.Sprintf("yield:%s:%s", a.source.Name(), filter)
}

// retain keeps allow-listed stablecoin records with positive APY.
func retain(opps []YieldOpportunity) []YieldOpportunity {
	out := opps[:0:0]
	for _, o := range opps {
		if o.APY <= 0 {
			continue
		}
		if !IsStablecoin(o.Asset) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func filterByProtocol(opps []YieldOpportunity, protocolFilter string) []YieldOpportunity {
	if protocolFilter == "" {
		return opps
	}
	needle := strings.ToLower(protocolFilter)
	out := opps[:0:0]
	for _, o := range opps {
		if strings.Contains(strings.ToLower(o.Protocol), needle) {
			out = append(out, o)
		}
	}
	return out
}
