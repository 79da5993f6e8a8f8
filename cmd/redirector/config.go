package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"redirect-gateway/redirect/infra"

	"github.com/urfave/cli/v2"
)

const (
	storeRedis      = "redis"
	storeCloudflare = "cloudflare"
	storeFile       = "file"
)

type config struct {
	listenAddr string
	store      string

	redisAddr      string
	redisPassword  string
	redisDB        int
	redisKeyPrefix string

	cfAccountID   string
	cfNamespaceID string
	cfAPIToken    string
	cfAPIURL      string

	mappingFile  string
	mappingWatch bool

	concurrencyMax     int
	concurrencyTimeout time.Duration
	requestTimeout     time.Duration
	healthPath         string

	logLevel    string
	logFormat   string
	logRequests bool
	accessLog   bool
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "listen-addr", Value: ":8080", EnvVars: []string{"LISTEN_ADDR"}, Usage: "address to listen on"},
		&cli.StringFlag{Name: "store", Value: storeRedis, EnvVars: []string{"STORE"}, Usage: "key-value backend: redis, cloudflare or file"},

		&cli.StringFlag{Name: "redis-addr", EnvVars: []string{"REDIS_ADDR"}, Usage: "redis host:port"},
		&cli.StringFlag{Name: "redis-password", EnvVars: []string{"REDIS_PASSWORD"}},
		&cli.IntFlag{Name: "redis-db", EnvVars: []string{"REDIS_DB"}},
		&cli.StringFlag{Name: "redis-key-prefix", EnvVars: []string{"REDIS_KEY_PREFIX"}, Usage: "prefix added to every lookup key"},

		&cli.StringFlag{Name: "cf-account-id", EnvVars: []string{"CF_ACCOUNT_ID"}},
		&cli.StringFlag{Name: "cf-namespace-id", EnvVars: []string{"CF_NAMESPACE_ID"}, Usage: "Workers KV namespace id"},
		&cli.StringFlag{Name: "cf-api-token", EnvVars: []string{"CF_API_TOKEN"}},
		&cli.StringFlag{Name: "cf-api-url", Value: infra.DefaultCloudflareAPI, EnvVars: []string{"CF_API_URL"}},

		&cli.StringFlag{Name: "mapping-file", EnvVars: []string{"MAPPING_FILE"}, Usage: "YAML/JSON mapping file for store=file"},
		&cli.BoolFlag{Name: "mapping-watch", Value: true, EnvVars: []string{"MAPPING_WATCH"}, Usage: "reload the mapping file when it changes"},

		&cli.IntFlag{Name: "concurrency-max", Value: 100, EnvVars: []string{"CONCURRENCY_MAX"}, Usage: "max in-flight requests, 0 disables"},
		&cli.DurationFlag{Name: "concurrency-timeout", EnvVars: []string{"CONCURRENCY_TIMEOUT"}},
		&cli.DurationFlag{Name: "request-timeout", Value: 5 * time.Second, EnvVars: []string{"REQUEST_TIMEOUT"}},
		&cli.StringFlag{Name: "health-path", EnvVars: []string{"HEALTH_PATH"}, Usage: "prefix for /healthz and /readyz, empty disables"},

		&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		&cli.StringFlag{Name: "log-format", Value: "text", EnvVars: []string{"LOG_FORMAT"}},
		&cli.BoolFlag{Name: "log-requests", EnvVars: []string{"LOG_REQUESTS"}, Usage: "debug log of every request URL"},
		&cli.BoolFlag{Name: "access-log", EnvVars: []string{"ACCESS_LOG"}},
	}
}

func readConfig(c *cli.Context) (config, error) {
	cfg := config{
		listenAddr: c.String("listen-addr"),
		store:      strings.ToLower(strings.TrimSpace(c.String("store"))),

		redisAddr:      c.String("redis-addr"),
		redisPassword:  c.String("redis-password"),
		redisDB:        c.Int("redis-db"),
		redisKeyPrefix: c.String("redis-key-prefix"),

		cfAccountID:   c.String("cf-account-id"),
		cfNamespaceID: c.String("cf-namespace-id"),
		cfAPIToken:    c.String("cf-api-token"),
		cfAPIURL:      c.String("cf-api-url"),

		mappingFile:  c.String("mapping-file"),
		mappingWatch: c.Bool("mapping-watch"),

		concurrencyMax:     c.Int("concurrency-max"),
		concurrencyTimeout: c.Duration("concurrency-timeout"),
		requestTimeout:     c.Duration("request-timeout"),
		healthPath:         c.String("health-path"),

		logLevel:    c.String("log-level"),
		logFormat:   c.String("log-format"),
		logRequests: c.Bool("log-requests"),
		accessLog:   c.Bool("access-log"),
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (cfg config) validate() error {
	switch cfg.store {
	case storeRedis:
		if strings.TrimSpace(cfg.redisAddr) == "" {
			return errors.New("REDIS_ADDR is required when STORE=redis")
		}
	case storeCloudflare:
		if cfg.cfAccountID == "" || cfg.cfNamespaceID == "" || cfg.cfAPIToken == "" {
			return errors.New("CF_ACCOUNT_ID, CF_NAMESPACE_ID and CF_API_TOKEN are required when STORE=cloudflare")
		}
	case storeFile:
		if strings.TrimSpace(cfg.mappingFile) == "" {
			return errors.New("MAPPING_FILE is required when STORE=file")
		}
	default:
		return fmt.Errorf("unknown STORE %q (want redis, cloudflare or file)", cfg.store)
	}

	if cfg.listenAddr == "" {
		return errors.New("LISTEN_ADDR is required")
	}
	if cfg.concurrencyMax < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	if cfg.requestTimeout < 0 {
		return errors.New("REQUEST_TIMEOUT must be >= 0")
	}
	return nil
}
