package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"go-clinic-scheduling/pkg/response"

	"github.com/sirupsen/logrus"
)

// Limiter counts a hit for key and reports whether it is allowed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RateLimitMiddleware struct {
	limiter Limiter
	scope   string
	log     *logrus.Logger
}

func NewRateLimitMiddleware(limiter Limiter, scope string, log *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, scope: scope, log: log}
}

// Handle lets the request through when the limiter is missing or failing
func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := m.limiter.Allow(r.Context(), m.scope+":"+clientIP(r))
		if err != nil {
			m.log.Warnf("Rate limiter unavailable, letting request through: %+v", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			response.TooManyRequests(w, "Too many requests, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
