package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// Reset clears the counter for the given key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counters, key)
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// AuthLimiter guards the credential endpoints against brute force, keyed by
// client IP and by target email so a distributed guesser cannot hammer one
// account from many addresses.
type AuthLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewAuthLimiter creates an auth limiter with per-minute windows.
func NewAuthLimiter(ipMax, emailMax int) *AuthLimiter {
	return &AuthLimiter{
		ip:    NewLimiter(time.Minute, ipMax),
		email: NewLimiter(time.Minute, emailMax),
	}
}

// CheckAttempt verifies a credential attempt from the given IP against the
// given email is allowed.
func (a *AuthLimiter) CheckAttempt(ip, email string) error {
	if !a.ip.Allow(ip) {
		return fmt.Errorf("too many attempts from this IP address, please try again later")
	}
	if email != "" && !a.email.Allow(email) {
		return fmt.Errorf("too many attempts for this account, please try again later")
	}
	return nil
}

// ReportSuccess clears the email counter after a successful login, so a user
// who finally typed the right password is not locked out by earlier typos.
func (a *AuthLimiter) ReportSuccess(email string) {
	a.email.Reset(email)
}
