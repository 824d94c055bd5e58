package namecache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu    sync.Mutex
	names []string
	err   error
	calls int
}

func (f *stubFetcher) FetchProductNames(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func (f *stubFetcher) set(names []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = names
	f.err = err
}

func TestRefreshReplacesWholesale(t *testing.T) {
	fetcher := &stubFetcher{names: []string{"Oat Milk", "Chia Seeds"}}
	cache := New(fetcher)

	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, []string{"Oat Milk", "Chia Seeds"}, cache.Names())
	assert.True(t, cache.Contains("Oat Milk"))

	// A later fetch replaces the set entirely, no incremental merge
	fetcher.set([]string{"Quinoa"}, nil)
	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, []string{"Quinoa"}, cache.Names())
	assert.False(t, cache.Contains("Oat Milk"))
}

func TestRefreshKeepsPreviousOnFailure(t *testing.T) {
	fetcher := &stubFetcher{names: []string{"Oat Milk"}}
	cache := New(fetcher)
	require.NoError(t, cache.Refresh(context.Background()))

	fetcher.set(nil, errors.New("connection refused"))
	err := cache.Refresh(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"Oat Milk"}, cache.Names())
	assert.True(t, cache.Contains("Oat Milk"))
}

func TestEmptyUntilFirstSuccess(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	cache := New(fetcher)

	require.Error(t, cache.Refresh(context.Background()))
	assert.Zero(t, cache.Len())
	assert.False(t, cache.Contains("anything"))
}

func TestContainsNormalizes(t *testing.T) {
	fetcher := &stubFetcher{names: []string{"Oat Milk"}}
	cache := New(fetcher)
	require.NoError(t, cache.Refresh(context.Background()))

	assert.True(t, cache.Contains("oat milk"))
	assert.True(t, cache.Contains(" Oat Milk "))
}

func TestDeduplicatesFetchedNames(t *testing.T) {
	fetcher := &stubFetcher{names: []string{"Oat Milk", "oat milk", "Quinoa"}}
	cache := New(fetcher)
	require.NoError(t, cache.Refresh(context.Background()))

	assert.Equal(t, []string{"Oat Milk", "Quinoa"}, cache.Names())
}

func TestConcurrentReadersAndRefreshers(t *testing.T) {
	fetcher := &stubFetcher{names: []string{"Oat Milk", "Quinoa"}}
	cache := New(fetcher)
	require.NoError(t, cache.Refresh(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				// Readers always see a complete set
				names := cache.Names()
				assert.NotEmpty(t, names)
				cache.Contains("Oat Milk")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = cache.Refresh(context.Background())
			}
		}()
	}
	wg.Wait()
}
