package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SigningSecretName is the well-known name of the JWT signing secret
// in the remote store.
const SigningSecretName = "jwt-signing-secret"

const (
	maxAttempts    = 2
	requestTimeout = 2 * time.Second
)

// Store fetches named secrets from a remote backend. Calls may fail or
// time out; the Resolver absorbs both.
type Store interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// HTTPStore talks to a secret store over its REST API.
type HTTPStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPStore creates a store client. An empty baseURL yields a store
// whose lookups always fail, which pushes the Resolver onto its
// fallback path.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// GetSecret fetches a single secret value by name.
func (s *HTTPStore) GetSecret(ctx context.Context, name string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("secret store not configured")
	}

	url := fmt.Sprintf("%s/v1/secrets/%s", s.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build secret request: %v", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("secret store request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("secret store returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode secret response: %v", err)
	}
	if payload.Value == "" {
		return "", fmt.Errorf("secret %q is empty", name)
	}
	return payload.Value, nil
}

// Resolver resolves the token-signing secret once per process. The
// remote store gets a small fixed retry budget; any failure falls back
// to the locally configured secret so callers always get a usable
// value and never an error.
type Resolver struct {
	store    Store
	fallback string

	once   sync.Once
	cached string
}

// NewResolver creates a resolver with a remote store and a local
// fallback secret.
func NewResolver(store Store, fallback string) *Resolver {
	return &Resolver{store: store, fallback: fallback}
}

// SigningSecret returns the signing secret, resolving it on first use
// and caching the result until restart.
func (r *Resolver) SigningSecret(ctx context.Context) string {
	r.once.Do(func() {
		r.cached = r.resolve(ctx)
	})
	return r.cached
}

func (r *Resolver) resolve(ctx context.Context) string {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		value, err := r.store.GetSecret(attemptCtx, SigningSecretName)
		cancel()
		if err == nil {
			logrus.Info("Signing secret resolved from remote store")
			return value
		}
		lastErr = err
	}

	logrus.WithError(lastErr).Warn("Secret store unreachable, using local fallback secret")
	return r.fallback
}
