package rxsig

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AnatoleLucet/rxsig/metrics"
	"github.com/AnatoleLucet/rxsig/sig"
)

type config struct {
	ctx     context.Context
	log     logrus.FieldLogger
	onError func(error)
	metrics *metrics.Metrics
	loop    *sig.Loop
	lazy    bool
}

// Option configures a Binding.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		ctx: context.Background(),
		log: log,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithContext sets the parent context of the binding's subscription.
// Cancelling it ends the binding like Dispose does.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithLogger sets the logger used for the binding's lifecycle.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithErrorHandler sets the function receiving the error the stream failed
// with. Without one, failures are logged as warnings.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithMetrics records the binding in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// ObserveOn delivers the stream's signals on the given loop.
func ObserveOn(l *sig.Loop) Option {
	return func(c *config) {
		c.loop = l
	}
}

// Lazy defers the subscription until the binding is first read or observed.
func Lazy() Option {
	return func(c *config) {
		c.lazy = true
	}
}
