package authstate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPCheck builds a CheckFunc that calls GET {baseURL}/api/auth/check with
// the given client. The client's cookie jar supplies the session cookies.
func HTTPCheck(client *http.Client, baseURL string) CheckFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) (CheckResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/auth/check", nil)
		if err != nil {
			return CheckResult{}, fmt.Errorf("authstate.HTTPCheck: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return CheckResult{}, fmt.Errorf("authstate.HTTPCheck: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return CheckResult{}, fmt.Errorf("authstate.HTTPCheck: unexpected status %d", resp.StatusCode)
		}

		var result CheckResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return CheckResult{}, fmt.Errorf("authstate.HTTPCheck: decode response: %w", err)
		}

		return result, nil
	}
}
