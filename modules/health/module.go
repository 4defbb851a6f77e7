// Package health provides the "deployment_working" validation check: it
// probes one or more HTTP health endpoints and passes only when every one
// responds with a 2xx status.
package health

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/vk/phaserun/internal/config"
	"github.com/vk/phaserun/internal/ctxlog"
	"github.com/vk/phaserun/internal/registry"
)

const requestTimeout = 10 * time.Second

// Module registers the deployment health check.
type Module struct{}

// Register registers the check with the application's registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCheckHandler("deployment_working", &check{})
}

type check struct{}

// Run probes every URL from the "urls" parameter (or the single "url"
// parameter). Endpoints are probed in order and all of them are always
// probed, so the log shows every unhealthy endpoint at once.
func (c *check) Run(ctx context.Context, validation *config.ValidationCheck, root string) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	urls, ok := validation.StringsParam("urls")
	if !ok {
		urls, ok = validation.StringsParam("url")
	}
	if !ok || len(urls) == 0 {
		return false, fmt.Errorf("deployment_working check needs a \"url\" or \"urls\" parameter")
	}

	client := resty.New().SetTimeout(requestTimeout)
	defer client.Close()

	healthy := true
	for _, url := range urls {
		res, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			logger.Warn("Health endpoint unreachable.", "url", url, "error", err)
			healthy = false
			continue
		}
		if !res.IsSuccess() {
			logger.Warn("Health endpoint unhealthy.", "url", url, "status", res.StatusCode())
			healthy = false
			continue
		}
		logger.Debug("Health endpoint OK.", "url", url, "status", res.StatusCode())
	}

	return healthy, nil
}
