package namecache

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

// Fetcher supplies the current list of valid product names from the
// external forecasting service.
type Fetcher interface {
	FetchProductNames(ctx context.Context) ([]string, error)
}

// Cache is the process-wide set of externally-sourced valid product names.
// Refresh replaces the held set wholesale on a successful fetch and keeps
// the previous set otherwise. Readers load an immutable snapshot via a
// single pointer read, so they always see either the old or the new
// complete set.
type Cache struct {
	fetcher Fetcher
	set     atomic.Pointer[nameSet]
}

type nameSet struct {
	names   []string
	members map[string]struct{}
}

func New(fetcher Fetcher) *Cache {
	c := &Cache{fetcher: fetcher}
	c.set.Store(newNameSet(nil))
	return c
}

func newNameSet(names []string) *nameSet {
	s := &nameSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if _, ok := s.members[key]; ok {
			continue
		}
		s.members[key] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// Refresh fetches the name list once. On success the held set is replaced
// entirely; on failure the previous set is kept and the error returned so
// the caller can log it.
func (c *Cache) Refresh(ctx context.Context) error {
	names, err := c.fetcher.FetchProductNames(ctx)
	if err != nil {
		return err
	}
	c.set.Store(newNameSet(names))
	return nil
}

// Start runs the initial refresh and then refreshes unconditionally every
// interval until ctx is cancelled. Failures are logged, never raised.
func (c *Cache) Start(ctx context.Context, interval time.Duration) {
	if err := c.Refresh(ctx); err != nil {
		log.Printf("Warning: initial product name refresh failed: %v", err)
	} else {
		log.Printf("Product name cache loaded (%d names)", c.Len())
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				log.Printf("Warning: product name refresh failed, keeping previous set: %v", err)
			}
		}
	}
}

// Contains reports membership in the current snapshot. Matching ignores
// case and surrounding whitespace.
func (c *Cache) Contains(name string) bool {
	_, ok := c.set.Load().members[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the current snapshot in fetch order. The returned slice
// must not be modified.
func (c *Cache) Names() []string {
	return c.set.Load().names
}

func (c *Cache) Len() int {
	return len(c.set.Load().names)
}
