package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleTimeout 超过该时长未访问的 IP 限流器会被清理
const idleTimeout = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter 按客户端 IP 维护令牌桶
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newIPLimiter(requestsPerMinute, burst int) *ipLimiter {
	if burst < 1 {
		burst = requestsPerMinute
	}
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(requestsPerMinute) / time.Minute.Seconds()),
		burst:    burst,
	}
}

func (l *ipLimiter) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// cleanup 移除空闲的 IP
func (l *ipLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleTimeout {
			delete(l.visitors, ip)
		}
	}
}

// run 每隔 interval 清理一次，ctx 结束后退出
func (l *ipLimiter) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.cleanup(now)
		}
	}
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimit 全局限流中间件
// 每 IP 每分钟 requestsPerMinute 个令牌，允许 burst 次突发，超过返回 429 并带 Retry-After
// 过期数据的清理协程随 ctx 结束退出
func RateLimit(ctx context.Context, requestsPerMinute, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(requestsPerMinute, burst)
	go limiter.run(ctx, time.Minute)

	return func(c *gin.Context) {
		l := limiter.get(c.ClientIP(), time.Now())
		if l.Allow() {
			c.Next()
			return
		}

		// 只计算下一个令牌的等待时间，不真正占用
		reservation := l.Reserve()
		delay := reservation.Delay()
		reservation.Cancel()

		retryAfter := int(delay.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"code":    http.StatusTooManyRequests,
			"message": "Too many requests, please try again later",
		})
	}
}
