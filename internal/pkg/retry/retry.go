package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 1
	defaultDelay    = 200 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

// RetryConfig describes how an outbound call is repeated. Attempts of 1 means a single try,
// zero is treated as one (retry-go reads zero as "forever").
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return []retry.Option{
		retry.Attempts(attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

// Do runs fn under the config, stopping early when ctx is done or retryIf rejects the error
func Do(ctx context.Context, rc *RetryConfig, fn func() error, retryIf func(error) bool) error {
	opts := append(rc.ToRetryOptions(), retry.Context(ctx))
	if retryIf != nil {
		opts = append(opts, retry.RetryIf(retryIf))
	}
	return retry.Do(fn, opts...)
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
