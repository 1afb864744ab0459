package health

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/techhub/storefront/internal/config"
)

// NewHealthHandler reports whether the storefront's collaborators are
// reachable: the backend API always, redis only when it is the configured
// storage backend, the storage directory when running on files.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "backend-api",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.API.BaseURL+"/productos", nil)
				if err != nil {
					return fmt.Errorf("failed to build health request: %w", err)
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return fmt.Errorf("backend api unreachable: %w", err)
				}
				defer resp.Body.Close()

				if resp.StatusCode >= http.StatusInternalServerError {
					return fmt.Errorf("backend api unhealthy: status %d", resp.StatusCode)
				}

				return nil
			},
		},
	}

	switch cfg.Storage.Backend {
	case "redis":
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.Redis.GetDSN(),
			}),
		})
	case "file":
		checks = append(checks, health.Config{
			Name:      "storage",
			Timeout:   time.Second,
			SkipOnErr: true,
			Check: func(_ context.Context) error {
				if err := os.MkdirAll(cfg.Storage.Path, 0o700); err != nil {
					return fmt.Errorf("storage directory unavailable: %w", err)
				}

				return nil
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "techhub-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
