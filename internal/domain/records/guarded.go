package records

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/launcher/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// Reader is the read side of the record store
type Reader interface {
	PublicWorkspaces(ctx context.Context, modules []string) ([]types.Workspace, error)
	PageExists(ctx context.Context, name string) (bool, error)
}

// Guarded routes reads through a circuit breaker so a failing database
// is not queried once per app on every request.
type Guarded struct {
	reader  Reader
	breaker *resilience.Breaker
}

// DefaultBreaker returns the breaker settings used for the record store
func DefaultBreaker(logger *zap.Logger) *resilience.Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return resilience.New("records", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: resilience.LogStateChanges(logger),
	})
}

// NewGuarded wraps reader with breaker
func NewGuarded(reader Reader, breaker *resilience.Breaker) *Guarded {
	return &Guarded{reader: reader, breaker: breaker}
}

// PublicWorkspaces implements Reader
func (g *Guarded) PublicWorkspaces(ctx context.Context, modules []string) ([]types.Workspace, error) {
	return guard(ctx, g.breaker, func() ([]types.Workspace, error) {
		return g.reader.PublicWorkspaces(ctx, modules)
	})
}

// PageExists implements Reader
func (g *Guarded) PageExists(ctx context.Context, name string) (bool, error) {
	return guard(ctx, g.breaker, func() (bool, error) {
		return g.reader.PageExists(ctx, name)
	})
}

// guard runs req through the breaker. A cancelled caller is not a store failure.
func guard[T any](ctx context.Context, breaker *resilience.Breaker, req func() (T, error)) (T, error) {
	var callerErr error
	result, err := resilience.Do(breaker, func() (T, error) {
		result, err := req()
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			callerErr = err
			return result, nil
		}
		return result, err
	})
	if callerErr != nil {
		return result, callerErr
	}
	return result, err
}
