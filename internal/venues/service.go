package venues

import (
	"context"
	"errors"
	"time"

	"smartslot/internal/upstream"
	"smartslot/pkg/cache"
	"smartslot/pkg/logger"
)

const (
	catalogCacheKey = "smartslot:venues:catalog"
	catalogCacheTTL = 60 * time.Second
)

// Service serves the venue catalog. The catalog changes rarely, so it is
// cached briefly to keep the listing page off the upstream's back.
type Service interface {
	List(ctx context.Context) ([]VenueView, error)
}

type service struct {
	upstream *upstream.Client
	cache    cache.Service
	logger   *logger.Logger
}

// NewService creates a venue service
func NewService(up *upstream.Client, c cache.Service, log *logger.Logger) Service {
	return &service{upstream: up, cache: c, logger: log}
}

func (s *service) List(ctx context.Context) ([]VenueView, error) {
	var cached []VenueView
	if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WithError(err).Warn("venue catalog cache read failed")
	}

	venues, err := s.upstream.ListVenues(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]VenueView, 0, len(venues))
	for _, v := range venues {
		views = append(views, NewVenueView(v))
	}

	if err := s.cache.Set(ctx, catalogCacheKey, views, catalogCacheTTL); err != nil {
		s.logger.WithError(err).Warn("venue catalog cache write failed")
	}
	return views, nil
}
