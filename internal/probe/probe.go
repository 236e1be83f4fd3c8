// Package probe issues the best-effort startup call to the status endpoint.
// Its result is logged and otherwise ignored.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/members"
)

// Prober calls GET {base}/api.
type Prober struct {
	base   string
	client *http.Client
	logger *zap.Logger
}

// New returns a Prober for the site at base (e.g. "http://localhost:8080").
// A nil client uses a client with a short timeout.
func New(base string, client *http.Client, logger *zap.Logger) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Prober{base: strings.TrimRight(base, "/"), client: client, logger: logger}
}

// Fetch performs the request and decodes the payload.
func (p *Prober) Fetch(ctx context.Context) (members.DataObject, error) {
	var data members.DataObject

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.base+"/api", nil)
	if err != nil {
		return data, fmt.Errorf("building probe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return data, fmt.Errorf("probing %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return data, fmt.Errorf("probing %s: unexpected status %s", req.URL, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return data, fmt.Errorf("decoding probe response: %w", err)
	}
	return data, nil
}

// Run fetches and logs the result. Failures are logged and swallowed.
func (p *Prober) Run(ctx context.Context) {
	data, err := p.Fetch(ctx)
	if err != nil {
		p.logger.Warn("status probe failed", zap.Error(err))
		return
	}
	p.logger.Info("status probe", zap.Strings("members", data.Members))
}
