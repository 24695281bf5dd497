package service

import (
	"context"
	"time"

	"flowstudio"
	"flowstudio/internal/api/metrics"
	"flowstudio/internal/api/models"
	"flowstudio/internal/editor/plugin"
	"flowstudio/pkg"

	"github.com/rs/zerolog"
)

const kindCachePrefix = "flowstudio:kind:"

// KindEntry is what the editor needs to register a node kind.
type KindEntry struct {
	Kind     models.NodeKind `json:"kind" yaml:"kind"`
	Title    string          `json:"title" yaml:"title"`
	Topology plugin.Topology `json:"topology" yaml:"topology"`
	Template string          `json:"template" yaml:"template"`
}

type NodeKindService struct {
	descriptors *plugin.Registry
	ttl         time.Duration
	logger      zerolog.Logger
}

func NewNodeKindService(descriptors *plugin.Registry, ttl time.Duration) *NodeKindService {
	return &NodeKindService{
		descriptors: descriptors,
		ttl:         ttl,
		logger:      flowstudio.Logger,
	}
}

// Catalog describes every registered kind, sorted by kind name
func (slf *NodeKindService) Catalog(ctx context.Context) ([]KindEntry, error) {
	kinds := slf.descriptors.Kinds()
	entries := make([]KindEntry, 0, len(kinds))
	for _, kind := range kinds {
		entry, err := slf.Describe(ctx, kind)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Describe returns the entry for one kind, from Redis when cached. Redis errors
// only cost a recomputation.
func (slf *NodeKindService) Describe(ctx context.Context, kind models.NodeKind) (KindEntry, error) {
	key := kindCachePrefix + string(kind)

	var entry KindEntry
	if slf.cacheEnabled() {
		err := pkg.RedisGet(key, &entry)
		if err == nil {
			metrics.KindCacheLookups.WithLabelValues("hit").Inc()
			return entry, nil
		}
		if pkg.IsRedisNil(err) {
			metrics.KindCacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.KindCacheLookups.WithLabelValues("error").Inc()
			slf.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Node kind cache read failed")
		}
	}

	d, err := slf.descriptors.Lookup(kind)
	if err != nil {
		return KindEntry{}, err
	}
	tmpl, err := d.Template()
	if err != nil {
		slf.logger.Error().Err(err).Str("kind", string(kind)).Msg("Error rendering node template")
		return KindEntry{}, err
	}
	entry = KindEntry{
		Kind:     d.Kind(),
		Title:    d.Title(),
		Topology: d.Topology(),
		Template: tmpl,
	}

	if slf.cacheEnabled() {
		if err = pkg.RedisSet(key, entry, slf.ttl); err != nil {
			slf.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Node kind cache write failed")
		}
	}
	return entry, nil
}

// Invalidate drops every cached kind entry.
func (slf *NodeKindService) Invalidate(ctx context.Context) error {
	if !slf.cacheEnabled() {
		return nil
	}
	for _, kind := range slf.descriptors.Kinds() {
		if err := pkg.RedisDelete(kindCachePrefix + string(kind)); err != nil {
			return err
		}
	}
	return nil
}

func (slf *NodeKindService) cacheEnabled() bool {
	return flowstudio.Redis != nil && slf.ttl > 0
}
