package ibp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"datahealth_api/config"
)

const (
	authPath = "/sap/opu/odata/sap/IBPAUTHENTICATION;v=0002"

	// Tokens are valid for 24 hours, refresh slightly earlier.
	tokenTTL = 23 * time.Hour
)

// AuthEngine signs outgoing requests. Read requests only need the
// credentials, modifying requests also need a CSRF token.
type AuthEngine interface {
	Authorize(ctx context.Context, req *http.Request, modifying bool) error
}

// CSRFAuth implements the x-csrf-token fetch flow with basic auth in
// the user@client form. The fetched token is cached until it expires.
type CSRFAuth struct {
	cfg    config.IBPConfig
	client *http.Client

	mu        sync.Mutex
	token     string
	fetchedAt time.Time
}

func NewCSRFAuth(cfg config.IBPConfig, client *http.Client) *CSRFAuth {
	return &CSRFAuth{cfg: cfg, client: client}
}

func (a *CSRFAuth) username() string {
	if a.cfg.Client == "" {
		return a.cfg.Username
	}
	return fmt.Sprintf("%s@%s", a.cfg.Username, a.cfg.Client)
}

func (a *CSRFAuth) Authorize(ctx context.Context, req *http.Request, modifying bool) error {
	req.SetBasicAuth(a.username(), a.cfg.Password)
	if !modifying {
		return nil
	}

	token, err := a.csrfToken(ctx)
	if err != nil {
		return fmt.Errorf("fetching csrf token: %w", err)
	}
	req.Header.Set("x-csrf-token", token)
	return nil
}

func (a *CSRFAuth) csrfToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && time.Since(a.fetchedAt) < tokenTTL {
		return a.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.URL+authPath, nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.SetBasicAuth(a.username(), a.cfg.Password)
	req.Header.Set("x-csrf-token", "fetch")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	token := resp.Header.Get("x-csrf-token")
	if token == "" {
		return "", fmt.Errorf("token endpoint returned no x-csrf-token header")
	}

	a.token = token
	a.fetchedAt = time.Now()
	return token, nil
}
