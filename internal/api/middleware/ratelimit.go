package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP.
// Лимитеры IP, не приходивших дольше idleTTL, удаляются.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	trusted   []*net.IPNet
	now       func() time.Time
	logger    Logger
}

// NewRateLimiter создает ограничитель: requestsPerSecond в среднем, burst подряд.
// Заголовкам X-Forwarded-For и X-Real-IP верим только от trustedProxies.
func NewRateLimiter(
	requestsPerSecond float64,
	burst int,
	idleTTL time.Duration,
	trustedProxies []*net.IPNet,
	logger Logger,
) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(requestsPerSecond),
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		trusted:   trustedProxies,
		now:       time.Now,
		logger:    logger,
	}
}

func (l *RateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep удаляет простаивающие лимитеры. Вызывается под mu.
func (l *RateLimiter) sweep(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, ip)
		}
	}
	l.lastSweep = now
}

// Middleware отвечает 429, если лимит IP исчерпан
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if !l.getLimiter(ip).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP возвращает адрес клиента. Заголовки прокси учитываются, только если
// соединение пришло от доверенного прокси. В X-Forwarded-For берётся самый правый
// адрес, не принадлежащий доверенным прокси.
func (l *RateLimiter) clientIP(r *http.Request) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	if !l.isTrusted(remote) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" || net.ParseIP(hop) == nil {
				break
			}
			if !l.isTrusted(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	return remote
}

func (l *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range l.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
