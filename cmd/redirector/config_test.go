package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"redirect-gateway/redirect/domain"
	"redirect-gateway/redirect/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) (config, error) {
	t.Helper()

	var cfg config
	var cfgErr error
	app := &cli.App{
		Flags: flags(),
		Action: func(c *cli.Context) error {
			cfg, cfgErr = readConfig(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"redirector"}, args...)))
	return cfg, cfgErr
}

func TestReadConfig_Defaults(t *testing.T) {
	cfg, err := parse(t, "--redis-addr", "localhost:6379")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.listenAddr)
	assert.Equal(t, storeRedis, cfg.store)
	assert.Equal(t, 100, cfg.concurrencyMax)
	assert.Equal(t, 5*time.Second, cfg.requestTimeout)
	assert.Equal(t, "", cfg.healthPath)
	assert.True(t, cfg.mappingWatch)
	assert.Equal(t, infra.DefaultCloudflareAPI, cfg.cfAPIURL)
}

func TestReadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORE", "File")
	t.Setenv("MAPPING_FILE", "/etc/redirects.yaml")
	t.Setenv("CONCURRENCY_MAX", "7")
	t.Setenv("HEALTH_PATH", "/_")

	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, storeFile, cfg.store)
	assert.Equal(t, "/etc/redirects.yaml", cfg.mappingFile)
	assert.Equal(t, 7, cfg.concurrencyMax)
	assert.Equal(t, "/_", cfg.healthPath)
}

func TestReadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "redis without addr", args: nil, want: "REDIS_ADDR is required"},
		{name: "cloudflare without token", args: []string{"--store", "cloudflare", "--cf-account-id", "a", "--cf-namespace-id", "n"}, want: "CF_API_TOKEN"},
		{name: "file without path", args: []string{"--store", "file"}, want: "MAPPING_FILE is required"},
		{name: "unknown store", args: []string{"--store", "etcd"}, want: "unknown STORE"},
		{name: "negative concurrency", args: []string{"--redis-addr", "x:1", "--concurrency-max=-1"}, want: "CONCURRENCY_MAX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpenLookup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("abc: example.com\n"), 0o644))

	cfg := config{store: storeFile, mappingFile: path, mappingWatch: true}
	lookup, closeFn, err := openLookup(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer closeFn()

	v, err := lookup.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.Target("example.com"), v)
}

func TestOpenLookup_CloudflarePingsAtStartup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := config{store: storeCloudflare, cfAccountID: "a", cfNamespaceID: "n", cfAPIToken: "t", cfAPIURL: srv.URL}
	_, _, err := openLookup(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}

func TestOpenLookup_RedisUnreachable(t *testing.T) {
	cfg := config{store: storeRedis, redisAddr: "127.0.0.1:1"}
	_, _, err := openLookup(context.Background(), cfg, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping error")
}
