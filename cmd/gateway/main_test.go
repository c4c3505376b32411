package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_Defaults(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "http://127.0.0.1:5000")

	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.listenAddr)
	assert.Equal(t, "memory", cfg.storage)
	assert.Equal(t, "none", cfg.stats)
	assert.Equal(t, 500*time.Millisecond, cfg.coalesceWait)
	assert.Equal(t, 64, cfg.maxRewrites)
	assert.Equal(t, "session", cfg.sessionCookie)
	assert.Equal(t, 24*time.Hour, cfg.statsTTL)
	assert.Equal(t, "minute", cfg.statsBucket)
	assert.False(t, cfg.statsTrackScopes)
}

func TestReadConfig_StatsOptions(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "http://127.0.0.1:5000")
	t.Setenv("PAGEINIT_STATS", "redis")
	t.Setenv("PAGEINIT_REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("PAGEINIT_STATS_TTL", "2h")
	t.Setenv("PAGEINIT_STATS_BUCKET", "NONE")
	t.Setenv("PAGEINIT_STATS_TRACK_SCOPES", "true")

	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.statsTTL)
	assert.Equal(t, "none", cfg.statsBucket)
	assert.True(t, cfg.statsTrackScopes)
}

func TestReadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"sem upstream", map[string]string{}},
		{"storage inválido", map[string]string{"UPSTREAM_URL": "http://x", "PAGEINIT_STORAGE": "disco"}},
		{"stats inválido", map[string]string{"UPSTREAM_URL": "http://x", "PAGEINIT_STATS": "statsd"}},
		{"redis sem endereço", map[string]string{"UPSTREAM_URL": "http://x", "PAGEINIT_STORAGE": "redis"}},
		{"bucket inválido", map[string]string{"UPSTREAM_URL": "http://x", "PAGEINIT_STATS_BUCKET": "hour"}},
		{"coalesce negativo", map[string]string{"UPSTREAM_URL": "http://x", "PAGEINIT_COALESCE_WAIT": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("UPSTREAM_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := readConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger_DebugLevel(t *testing.T) {
	logger, err := newLogger("DEBUG")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}

func TestServe_DrainsBeforeReturning(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	drained := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, srv, func(context.Context) {
			time.Sleep(20 * time.Millisecond)
			close(drained)
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	select {
	case <-drained:
	default:
		t.Fatal("serve returned before the drain finished")
	}
}

func TestServe_ListenErrorSkipsDrain(t *testing.T) {
	srv := &http.Server{Addr: "endereço-inválido", Handler: http.NotFoundHandler()}
	called := false

	err := serve(context.Background(), srv, func(context.Context) { called = true })
	assert.Error(t, err)
	assert.False(t, called)
}
