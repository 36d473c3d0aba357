package clients

import (
	"context"
	"net/http"
	"time"
)

const defaultProbeTimeout = 2 * time.Second

// HealthProbe names an upstream endpoint to GET. A zero Timeout means 2s.
type HealthProbe struct {
	Name    string
	Client  *Client
	Path    string
	Timeout time.Duration
}

type HealthResult struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	LatencyMS  int64  `json:"latencyMs"`
	Error      string `json:"error,omitempty"`
}

// CheckHealth treats any 2xx as healthy. Transport errors and timeouts are
// reported in Error rather than returned.
func CheckHealth(ctx context.Context, probe HealthProbe) HealthResult {
	timeout := probe.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	res := HealthResult{Name: probe.Name}

	resp, err := probe.Client.Do(ctx, http.MethodGet, probe.Path, "", nil, http.Header{})
	res.LatencyMS = time.Since(started).Milliseconds()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	res.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
	return res
}
