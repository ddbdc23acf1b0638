package breaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

// Config holds configuration for a circuit breaker.
type Config struct {
	// Name identifies this breaker in metrics and logs.
	Name string

	// MaxRequests is the maximum number of requests allowed in the half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing internal counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before moving to half-open.
	Timeout time.Duration

	// FailureRatio is the ratio of failures to total requests that trips the breaker.
	FailureRatio float64

	// MinRequests is the minimum number of requests before the ratio is evaluated.
	MinRequests uint32

	// IsSuccessful classifies errors that must not count as failures, such as
	// a cache miss. Nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// DefaultConfig returns sensible defaults for a circuit breaker.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// stateToFloat maps gobreaker states to prometheus gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Breaker guards calls to a flaky dependency.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// New creates a circuit breaker that logs every state transition.
func New(cfg Config, logger *slog.Logger) *Breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
	if cfg.IsSuccessful != nil {
		settings.IsSuccessful = cfg.IsSuccessful
	}

	breakerState.WithLabelValues(cfg.Name).Set(0)

	return &Breaker{
		cb:   gobreaker.NewCircuitBreaker[any](settings),
		name: cfg.Name,
	}
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Do runs fn through b. When the breaker is open fn is not called and the
// returned error satisfies IsOpen.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if v, ok := res.(T); ok {
			return v, err
		}
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

// Run is Do for calls without a result.
func Run(b *Breaker, fn func() error) error {
	_, err := Do(b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// IsOpen reports whether err was produced by a breaker refusing the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
