package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"storefront/api/web"
	"storefront/api/weberr"
	"storefront/rate"
)

// RateLimit rejects requests from clients that exceed the limiter's
// budget. Clients are keyed by remote host.
func RateLimit(limiter *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !limiter.Check(host) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, "too many requests", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
