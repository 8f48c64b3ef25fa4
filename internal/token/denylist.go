package token

import (
	"sync"
	"time"
)

// Denylist holds revoked token IDs until their natural expiry. It exists
// because tokens are otherwise stateless: without it a token stays valid
// until it expires no matter what. The list is owned by the auth service
// that created it, not shared process-wide.
type Denylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	done    chan struct{}
	once    sync.Once
}

func NewDenylist(sweepInterval time.Duration) *Denylist {
	d := &Denylist{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go d.sweep(sweepInterval)
	return d
}

// Revoke marks the token id as invalid until the given time. Past that
// point expiry checking rejects the token anyway.
func (d *Denylist) Revoke(jti string, until time.Time) {
	if jti == "" {
		return
	}
	d.mu.Lock()
	d.entries[jti] = until
	d.mu.Unlock()
}

func (d *Denylist) Revoked(jti string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	until, ok := d.entries[jti]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(d.entries, jti)
		return false
	}
	return true
}

func (d *Denylist) Close() {
	d.once.Do(func() { close(d.done) })
}

func (d *Denylist) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case now := <-ticker.C:
			d.mu.Lock()
			for jti, until := range d.entries {
				if now.After(until) {
					delete(d.entries, jti)
				}
			}
			d.mu.Unlock()
		}
	}
}
