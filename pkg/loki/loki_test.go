package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "not a url"
	_, err = New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "http://localhost:3100/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Pusher_StopFlushesPendingEntries(t *testing.T) {
	var (
		mu       sync.Mutex
		received []pushRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user", user)
		assert.Equal(t, "pass", pass)
		assert.Equal(t, "gzip", r.Header.Get("Content-Encoding"))

		gz, err := gzip.NewReader(r.Body)
		require.NoError(t, err)
		var req pushRequest
		require.NoError(t, json.NewDecoder(gz).Decode(&req))

		mu.Lock()
		received = append(received, req)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Hour,
		Username:     "user",
		Password:     "pass",
		Labels:       map[string]string{"app": "hh-sync"},
	}, &MockLogger{})
	require.NoError(t, err)

	pusher.Push(LogEntry{Level: "error", Message: "first"})
	pusher.Push(LogEntry{Level: "warning", Message: "second", ErrorType: "validation"})
	pusher.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "hh-sync", received[0].Streams[0].Stream["app"])
	require.Len(t, received[0].Streams[0].Values, 2)

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(received[0].Streams[0].Values[1][1]), &entry))
	assert.Equal(t, "second", entry.Message)
	assert.Equal(t, "validation", entry.ErrorType)
}
