package discount

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ClientLimiter decide se o cliente ainda pode pedir cotações agora.
// infra.QuoteBudgets implementa esta interface.
type ClientLimiter interface {
	Allow(client string) bool
}

type KeyFunc func(r *http.Request) string

type ThrottleOptions struct {
	Limiter            ClientLimiter
	KeyFn              KeyFunc
	KeyHeader          string
	TrustXForwardedFor bool
	RetryAfter         time.Duration
}

// ClientKey identifica quem pede a cotação. Candidatos, em ordem:
// header configurado, primeiro salto do X-Forwarded-For (se confiável)
// e o host do RemoteAddr.
func ClientKey(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		candidates := make([]string, 0, 3)
		if keyHeader != "" {
			candidates = append(candidates, r.Header.Get(keyHeader))
		}
		if trustXFF {
			first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
			candidates = append(candidates, first)
		}
		candidates = append(candidates, remoteHost(r.RemoteAddr))

		for _, c := range candidates {
			if c = strings.TrimSpace(c); c != "" {
				return c
			}
		}
		return "unknown"
	}
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// retryAfterSeconds arredonda para cima: Retry-After 0 faria o cliente repetir na hora.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(max(1, int(math.Ceil(d.Seconds()))))
}

// Throttle aplica o limite por cliente. Sem Limiter, vira pass-through.
func Throttle(opts ThrottleOptions) func(next http.Handler) http.Handler {
	if opts.Limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = ClientKey(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	retryAfter := retryAfterSeconds(opts.RetryAfter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !opts.Limiter.Allow(opts.KeyFn(r)) {
				w.Header().Set("Retry-After", retryAfter)
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: http.StatusText(http.StatusTooManyRequests)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
