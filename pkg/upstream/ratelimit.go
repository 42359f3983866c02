package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Service names for rate limiting
	ServiceAutocomplete = "autocomplete"
	ServicePlaces       = "places"
	ServiceCabs         = "cabs"
)

// RateLimiter manages rate limiting for the upstream services
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
}

var (
	// globalRateLimiter is the singleton rate limiter instance
	globalRateLimiter *RateLimiter

	// rateLimiterOnce ensures we only create the rate limiter once
	rateLimiterOnce sync.Once
)

// GetRateLimiter returns the global rate limiter instance
func GetRateLimiter() *RateLimiter {
	rateLimiterOnce.Do(func() {
		limiters := make(map[string]*rate.Limiter)

		// Google Places autocomplete: 10 req/s with burst of 5
		limiters[ServiceAutocomplete] = rate.NewLimiter(rate.Every(100*time.Millisecond), 5)

		// Place-resolution service: 10 req/s with burst of 5
		limiters[ServicePlaces] = rate.NewLimiter(rate.Every(100*time.Millisecond), 5)

		// Cab search/hold backend: 5 req/s with burst of 3
		limiters[ServiceCabs] = rate.NewLimiter(rate.Every(200*time.Millisecond), 3)

		globalRateLimiter = &RateLimiter{
			limiters: limiters,
		}
	})

	return globalRateLimiter
}

// Wait blocks until the rate limit for the specified service allows an event
// or the context is canceled.
func (rl *RateLimiter) Wait(ctx context.Context, service string) error {
	rl.mu.RLock()
	limiter, exists := rl.limiters[service]
	rl.mu.RUnlock()

	if !exists {
		return fmt.Errorf("no rate limiter defined for service: %s", service)
	}

	if err := limiter.Wait(ctx); err != nil {
		slog.Debug("rate limiter wait error", "service", service, "error", err)
		return err
	}

	return nil
}

// WaitForService is a convenience function to wait for a service's rate limit
// using the global rate limiter
func WaitForService(ctx context.Context, service string) error {
	return GetRateLimiter().Wait(ctx, service)
}
