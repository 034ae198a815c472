package potprovider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Readiness polling tuning. The ceiling keeps a dead provider from stalling
// startup much past half a minute.
const (
	healthInitialInterval = 300 * time.Millisecond
	healthMaxInterval     = 2 * time.Second
	healthProbeTimeout    = 3 * time.Second
)

// Paths probed in order; any non-5xx response counts as ready
var healthPaths = []string{"/health", "/"}

// waitReady polls the provider until it answers or the backoff budget is
// exhausted
func waitReady(ctx context.Context, client *http.Client, baseURL string, budget time.Duration) error {
	base := strings.TrimRight(baseURL, "/")

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = healthInitialInterval
	bo.MaxInterval = healthMaxInterval
	bo.MaxElapsedTime = budget

	probe := func() error {
		var lastErr error
		for _, path := range healthPaths {
			reqCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
			req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, base+path, nil)
			if err != nil {
				cancel()
				return backoff.Permanent(err)
			}

			resp, err := client.Do(req)
			cancel()
			if err != nil {
				lastErr = err
				continue
			}
			resp.Body.Close()

			if resp.StatusCode < http.StatusInternalServerError {
				return nil
			}
			lastErr = fmt.Errorf("provider returned status %d on %s", resp.StatusCode, path)
		}
		return lastErr
	}

	if err := backoff.Retry(probe, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("provider did not become ready within %s: %w", budget, err)
	}
	return nil
}
