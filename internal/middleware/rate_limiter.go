package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"malaria-intake/pkg/utils"
)

// IPRateLimiter guarda um limiter por IP
type IPRateLimiter struct {
	ips map[string]*visitor
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		ips: make(map[string]*visitor),
		r:   r,
		b:   b,
	}

	// limpeza em background dos IPs inativos
	go i.cleanupVisitors()

	return i
}

// GetLimiter devolve o limiter do IP, criando na primeira vez
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.ips[ip]
	if !exists {
		limiter := rate.NewLimiter(i.r, i.b)
		i.ips[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors remove IPs sem acesso há mais de 3 minutos
func (i *IPRateLimiter) cleanupVisitors() {
	for {
		time.Sleep(1 * time.Minute)
		i.removeIdle(3 * time.Minute)
	}
}

func (i *IPRateLimiter) removeIdle(maxIdle time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, v := range i.ips {
		if time.Since(v.lastSeen) > maxIdle {
			delete(i.ips, ip)
		}
	}
}

// RateLimitMiddleware limita requisições por IP (RATE_LIMIT_RPS / RATE_LIMIT_BURST)
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			utils.AbortFail(c, http.StatusTooManyRequests, "Muitas requisições. Tente novamente em instantes.")
			return
		}
		c.Next()
	}
}
