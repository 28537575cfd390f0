package web

import (
	"expvar"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdleTimeout   = 3 * time.Minute
)

// expvar names are process-global, so the counters are published once
var (
	totalRequestsReceived           = expvar.NewInt("total_requests_received")
	totalResponsesSent              = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicroseconds = expvar.NewInt("total_processing_time_microseconds")
	totalResponsesSentByStatus      = expvar.NewMap("total_responses_sent_by_status")
)

func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				s.serverErrorResponse(w, r, fmt.Errorf("%v", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a token bucket per client IP. Idle clients are swept
// while handling requests.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if !s.cfg.Limiter.Enabled {
		return next
	}

	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu        sync.Mutex
		clients   = make(map[string]*client)
		lastSweep = time.Now()
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := realip.FromRequest(r)
		now := time.Now()

		mu.Lock()

		if now.Sub(lastSweep) > limiterSweepInterval {
			for key, c := range clients {
				if now.Sub(c.lastSeen) > limiterIdleTimeout {
					delete(clients, key)
				}
			}
			lastSweep = now
		}

		c, found := clients[ip]
		if !found {
			c = &client{
				limiter: rate.NewLimiter(rate.Limit(s.cfg.Limiter.RPS), s.cfg.Limiter.Burst),
			}
			clients[ip] = c
		}
		c.lastSeen = now

		if !c.limiter.Allow() {
			mu.Unlock()
			s.rateLimitExceededResponse(w, r)
			return
		}

		mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// metrics records request counters and logs each request
func (s *Server) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		totalRequestsReceived.Add(1)

		m := httpsnoop.CaptureMetrics(next, w, r)

		totalResponsesSent.Add(1)
		totalProcessingTimeMicroseconds.Add(m.Duration.Microseconds())
		totalResponsesSentByStatus.Add(strconv.Itoa(m.Code), 1)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", realip.FromRequest(r)).
			Int("status", m.Code).
			Dur("duration", m.Duration).
			Int64("bytes", m.Written).
			Msg("Handled request")
	})
}
