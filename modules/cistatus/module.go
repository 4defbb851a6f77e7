// Package cistatus provides the "ci_passing" validation check: it queries a
// CI status endpoint and passes only when the reported state is "success".
package cistatus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

const requestTimeout = 30 * time.Second

// Module registers the CI status check.
type Module struct{}

// Register registers the check with the application's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheckHandler("ci_passing", &check{})
}

type check struct{}

// statusResponse is the subset of the combined-status payload we care about.
type statusResponse struct {
	State string `json:"state"`
}

// Run fetches the status endpoint named by the "url" parameter. A missing
// URL fails the check: a CI gate that cannot be consulted must not pass.
func (c *check) Run(ctx context.Context, validation *config.ValidationCheck, root string) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	url, ok := validation.StringParam("url")
	if !ok || url == "" {
		return false, fmt.Errorf("ci_passing check is missing the required \"url\" parameter")
	}

	client := resty.New().SetTimeout(requestTimeout)
	defer client.Close()

	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return false, fmt.Errorf("failed to query CI status at %s: %w", url, err)
	}
	if !res.IsSuccess() {
		logger.Warn("CI status endpoint returned a non-2xx response.", "url", url, "status", res.StatusCode())
		return false, nil
	}

	var status statusResponse
	if err := json.Unmarshal(res.Bytes(), &status); err != nil {
		return false, fmt.Errorf("unparsable CI status payload from %s: %w", url, err)
	}

	logger.Debug("CI status fetched.", "url", url, "state", status.State)
	return status.State == "success", nil
}
