// Package ratelimit limits how often a single client may call an endpoint.
package ratelimit

import (
	"context"
	"time"
)

// Window is the period each limit applies to.
const Window = time.Minute

// Limiter decides whether a request identified by key may proceed.
// When it may not, retryAfter says how long until it could.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
