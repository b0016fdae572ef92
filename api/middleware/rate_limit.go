package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hazolabs/storefront-backend/api/responses"
	"github.com/hazolabs/storefront-backend/pkg/config"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

// RateLimiterStore is the counter surface the login throttle needs; the
// redis client satisfies it.
type RateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// LoginRateLimit throttles the admin login endpoint per client IP and per
// submitted username. Without a backing store the middleware is a pass-through.
func LoginRateLimit(cfg config.AuthRateLimitConfig, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || cfg.LoginWindow <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.LoginIPLimit > 0 {
				ip := clientIP(r)
				key := fmt.Sprintf("rl:login:ip:%s", ip)
				if blocked := checkLimit(ctx, logg, w, store, key, cfg.LoginWindow, int64(cfg.LoginIPLimit), "ip"); blocked {
					return
				}
			}

			if cfg.LoginUsernameLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if username := extractUsername(body); username != "" {
					key := fmt.Sprintf("rl:login:user:%s", hashValue(username))
					if blocked := checkLimit(ctx, logg, w, store, key, cfg.LoginWindow, int64(cfg.LoginUsernameLimit), "username"); blocked {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func checkLimit(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, store RateLimiterStore, key string, window time.Duration, limit int64, scope string) bool {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		// a broken limiter must not take logins down with it
		if logg != nil {
			logg.Error(ctx, "rate limiter unavailable", err)
		}
		return false
	}
	if count <= limit {
		return false
	}

	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(window.Seconds()),
		})
		logg.Warn(logCtx, "login.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts"))
	return true
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractUsername(payload []byte) string {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Username))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
