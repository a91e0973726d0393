package doctor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/autostarter/internal/models"
)

// Registry holds the registered checks and runs them concurrently.
type Registry struct {
	checks []Check
	logger *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		checks: make([]Check, 0),
		logger: logger.Named("doctor"),
	}
}

// Register adds a check if it's available on the current host.
func (r *Registry) Register(c Check) {
	if !c.IsAvailable() {
		r.logger.Debug("Check not available, skipping", zap.String("name", c.Name()))
		return
	}
	r.checks = append(r.checks, c)
}

// RunAll runs every registered check concurrently. Results keep registration
// order. A failing check does not prevent the others from completing.
func (r *Registry) RunAll(ctx context.Context) []models.CheckResult {
	results := make([]models.CheckResult, len(r.checks))
	var wg sync.WaitGroup

	for i, c := range r.checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			start := time.Now()
			detail, err := c.Run(ctx)
			res := models.CheckResult{
				Name:     c.Name(),
				Status:   models.StatusOK,
				Detail:   detail,
				Duration: time.Since(start),
			}
			if err != nil {
				res.Status = models.StatusFail
				if errors.Is(err, ErrAdvisory) {
					res.Status = models.StatusWarn
				}
				if res.Detail == "" {
					res.Detail = err.Error()
				}
				r.logger.Debug("Check did not pass",
					zap.String("check", c.Name()),
					zap.String("status", res.Status),
					zap.Error(err))
			}
			results[i] = res
		}(i, c)
	}

	wg.Wait()
	return results
}

// Checks returns a copy of all registered checks.
func (r *Registry) Checks() []Check {
	result := make([]Check, len(r.checks))
	copy(result, r.checks)
	return result
}

// Healthy reports whether no result failed.
func Healthy(results []models.CheckResult) bool {
	for _, res := range results {
		if res.Status == models.StatusFail {
			return false
		}
	}
	return true
}
