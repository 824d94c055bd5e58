package mlclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendRelaysSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommend", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[{"product":"Oat Milk","recommendation_score":0.92}]}`))
	}))
	defer upstream.Close()

	client := New(upstream.URL, 2*time.Second)
	resp, err := client.Recommend(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"recommendations":[{"product":"Oat Milk","recommendation_score":0.92}]}`, string(resp.Body))
}

func TestRecommendRelaysUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"models not loaded"}`))
	}))
	defer upstream.Close()

	client := New(upstream.URL, 2*time.Second)
	resp, err := client.Recommend(context.Background())
	require.NoError(t, err, "a completed upstream call is not a transport failure")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"models not loaded"}`, string(resp.Body))
}

func TestRecommendTimeoutIsCancelled(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()
	defer close(release)

	client := New(upstream.URL, 100*time.Millisecond)

	start := time.Now()
	_, err := client.Recommend(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrUnreachable)
	// The call must actually be cancelled at the bound, not ride out the hang
	assert.Less(t, elapsed, time.Second)
}

func TestRecommendUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listening anymore

	client := New(upstream.URL, 2*time.Second)
	_, err := client.Recommend(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestFetchProductNames(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":["Oat Milk","Quinoa"]}`))
	}))
	defer upstream.Close()

	client := New(upstream.URL, 2*time.Second)
	names, err := client.FetchProductNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Oat Milk", "Quinoa"}, names)
}

func TestFetchProductNamesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	client := New(upstream.URL, 2*time.Second)
	_, err := client.FetchProductNames(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
