package scenariocheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/types"
)

// client is a thin JSON client for the service API.
type client struct {
	base string
	http *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
	}
}

// checkHealth verifies the service answers on /healthz.
func (c *client) checkHealth(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// putScenarios replaces the service's scenario batch.
func (c *client) putScenarios(ctx context.Context, batch tabular.Table) error {
	payload := struct {
		Rows tabular.Table `json:"rows"`
	}{Rows: batch}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal scenarios: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPut, "/scenarios", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("put scenarios failed with status %d", resp.StatusCode)
	}
	return nil
}

// putRows replaces one rule table endpoint with the given rows.
func (c *client) putRows(ctx context.Context, path string, rows []map[string]any) error {
	body, err := json.Marshal(map[string]any{"rows": rows})
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("put %s failed with status %d", path, resp.StatusCode)
	}
	return nil
}

// putConfig pins base rate and policies to known values.
func (c *client) putConfig(ctx context.Context, baseRate float64, tierPolicy, bonusPolicy string) error {
	body, err := json.Marshal(map[string]any{
		"base_rate":    baseRate,
		"tier_policy":  tierPolicy,
		"bonus_policy": bonusPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPut, "/config", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("put config failed with status %d", resp.StatusCode)
	}
	return nil
}

// getResults fetches the computed result batch.
func (c *client) getResults(ctx context.Context) ([]types.ScenarioResult, error) {
	resp, err := c.do(ctx, http.MethodGet, "/results", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get results failed with status %d", resp.StatusCode)
	}
	var out struct {
		Rows []types.ScenarioResult `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return out.Rows, nil
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	return resp, nil
}
