package service

import "github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/logger"

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithLogger sets a custom logger for the session.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// CacheOption applies a configuration option to the history Cache.
type CacheOption func(*Cache)

// WithCacheLogger sets a custom logger for the cache.
func WithCacheLogger(log logger.Logger) CacheOption {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}
