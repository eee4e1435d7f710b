package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/itchan-dev/simpleboard/shared/middleware/ratelimiter"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getKey func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetViewerFromContext(r).IsAdmin() { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			key, err := getKey(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(key) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.Limiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIdentityOrIP keys on the identity token when the Viewer middleware has
// resolved one, falling back to the client IP.
func GetIdentityOrIP(r *http.Request) (string, error) {
	if id := GetViewerFromContext(r).Identity; id != "" {
		return "id_" + id, nil
	}
	return GetIP(r)
}

// GetIP extracts the client IP from RemoteAddr only. Forwarding headers are
// not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}
