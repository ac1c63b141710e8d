package textvec

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Health checks the health of the server. A degraded server answers 503
// with a regular health body, which is returned without error.
func (c *Client) Health(ctx context.Context) (status HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	err = c.do(ctx, http.MethodGet, "/health", nil, &status)
	if isStatus(err, http.StatusServiceUnavailable) {
		var apiErr *APIError
		errors.As(err, &apiErr)
		if json.Unmarshal([]byte(apiErr.Message), &status) == nil && status.Status != "" {
			return status, nil
		}
	}
	return status, err
}
