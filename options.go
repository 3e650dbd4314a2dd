package endfkit

import (
	"log/slog"

	"github.com/hupe1980/endfkit/resource"
)

// Options is the resolved configuration shared by every container.
//
// Containers copy it on construction; clones inherit the source's Options.
type Options struct {
	Logger  *Logger
	Metrics MetricsCollector
	Budget  *resource.Controller // nil means unlimited
}

// Option configures container constructors.
type Option func(*Options)

// WithLogger configures structured diagnostics for failed operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := endfkit.NewJSONLogger(slog.LevelDebug)
//	tbl, _ := xsec.New(64, endfkit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *Options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.Logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Logger = NewTextLogger(level)
	}
}

// WithBudget charges every allocation of the container against rc.
// Growth that would exceed the budget fails with ErrAllocation and leaves the
// container unchanged.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	vec, _ := vector.New(1024, endfkit.WithBudget(rc))
func WithBudget(rc *resource.Controller) Option {
	return func(o *Options) {
		o.Budget = rc
	}
}

// WithMetricsCollector configures a metrics collector for growth and failures.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *Options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.Metrics = mc
	}
}

// ApplyOptions resolves optFns on top of the defaults.
func ApplyOptions(optFns []Option) Options {
	o := Options{
		Logger:  NoopLogger(),
		Metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Inherit returns an Option that copies o wholesale. Used by Copy methods.
func (o Options) Inherit() Option {
	return func(dst *Options) {
		*dst = o
	}
}

// Reserve charges bytes against the budget.
func (o Options) Reserve(bytes int64) error {
	if err := o.Budget.AcquireMemory(bytes); err != nil {
		return NewAllocationError(bytes, err)
	}
	return nil
}

// Release returns bytes to the budget.
func (o Options) Release(bytes int64) {
	o.Budget.ReleaseMemory(bytes)
}

// Fail records a failed operation and returns err unchanged.
func (o Options) Fail(kind Kind, op string, err error, attrs ...any) error {
	o.Metrics.RecordFailure(kind, op, err)
	o.Logger.LogFailure(op, err, append([]any{"container", kind.String()}, attrs...)...)
	return err
}

// Grew records a capacity change attempt.
func (o Options) Grew(kind Kind, from, to int, err error) {
	o.Metrics.RecordGrowth(kind, from, to, err)
	o.Logger.LogGrowth(kind, from, to, err)
}
