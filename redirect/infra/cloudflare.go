package infra

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"redirect-gateway/redirect/domain"

	"github.com/go-resty/resty/v2"
)

const DefaultCloudflareAPI = "https://api.cloudflare.com/client/v4"

const (
	cfValuePath     = "/accounts/{accountId}/storage/kv/namespaces/{namespaceId}/values/{keyName}"
	cfNamespacePath = "/accounts/{accountId}/storage/kv/namespaces/{namespaceId}"
)

// CloudflareKVLookup lê um namespace do Workers KV pela API REST.
// O valor é retornado como veio (corpo cru da resposta).
type CloudflareKVLookup struct {
	client      *resty.Client
	accountID   string
	namespaceID string
}

type CloudflareOption func(*resty.Client)

func WithCloudflareBaseURL(u string) CloudflareOption {
	return func(c *resty.Client) { c.SetBaseURL(strings.TrimRight(u, "/")) }
}

func WithCloudflareTimeout(d time.Duration) CloudflareOption {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func NewCloudflareKVLookup(accountID, namespaceID, token string, opts ...CloudflareOption) *CloudflareKVLookup {
	client := resty.New().
		SetBaseURL(DefaultCloudflareAPI).
		SetAuthToken(token).
		SetTimeout(5 * time.Second)
	for _, opt := range opts {
		opt(client)
	}
	return &CloudflareKVLookup{
		client:      client,
		accountID:   accountID,
		namespaceID: namespaceID,
	}
}

// Get implementa domain.Lookup. HTTP 404 vira domain.ErrNotFound.
// O KV não aceita chave vazia, então ela nem é consultada.
func (l *CloudflareKVLookup) Get(ctx context.Context, key domain.Key) (domain.Target, error) {
	if key == "" {
		return "", domain.ErrNotFound
	}

	resp, err := l.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"accountId":   l.accountID,
			"namespaceId": l.namespaceID,
			"keyName":     string(key),
		}).
		Get(cfValuePath)
	if err != nil {
		return "", fmt.Errorf("cloudflare kv get %q: %w", key, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", domain.ErrNotFound
	case !resp.IsSuccess():
		return "", fmt.Errorf("cloudflare kv get %q: unexpected status %d", key, resp.StatusCode())
	}
	return domain.Target(resp.String()), nil
}

// Ping busca os metadados do namespace; serve para validar token e ids.
func (l *CloudflareKVLookup) Ping(ctx context.Context) error {
	resp, err := l.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"accountId":   l.accountID,
			"namespaceId": l.namespaceID,
		}).
		Get(cfNamespacePath)
	if err != nil {
		return fmt.Errorf("cloudflare kv ping: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("cloudflare kv ping: unexpected status %d", resp.StatusCode())
	}
	return nil
}
