package threadcore

import "io"

// Config is the process-wide configuration record from spec §6.
type Config struct {
	// DestroyOnStackErr: on canary failure, invalidate the slot and
	// continue (true) instead of aborting the process (false).
	DestroyOnStackErr bool
	// ExitWhenNoThreads: terminate with status 0 once a full scheduler
	// pass finds no schedulable thread.
	ExitWhenNoThreads bool
	// LogScheduler: when false, suppresses the scheduler's own
	// "yielding"/"resuming"/"scheduling new thread"/"thread yielded"
	// events (a thread's own events are never suppressed).
	LogScheduler bool
}

// DefaultConfig matches the teacher-derived defaults from spec §6.
func DefaultConfig() Config {
	return Config{
		DestroyOnStackErr: false,
		ExitWhenNoThreads: true,
		LogScheduler:      true,
	}
}

// NewConfig builds a Config from DefaultConfig with opts applied in
// order, in the teacher's NewLogger(opts ...Option) style.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option mutates a Config, in the teacher's LoggerConfig/NewLogger style.
type Option func(*Config)

func WithDestroyOnStackErr(v bool) Option { return func(c *Config) { c.DestroyOnStackErr = v } }
func WithExitWhenNoThreads(v bool) Option { return func(c *Config) { c.ExitWhenNoThreads = v } }
func WithLogScheduler(v bool) Option      { return func(c *Config) { c.LogScheduler = v } }

// Sink is the formatted-print host collaborator spec §6 requires: at
// minimum a byte-stream writer good enough for the "Thread NAME: event"
// log lines (themselves pre-formatted by log.go).
type Sink interface {
	io.Writer
}

// Halter is the platform halt routine: terminate the process with an
// exit code. Production wraps os.Exit; tests inject a recording fake.
type Halter interface {
	Exit(code int)
}

// haltFunc adapts a plain function to Halter.
type haltFunc func(int)

func (h haltFunc) Exit(code int) { h(code) }

// HalterFunc builds a Halter from a function, e.g. HalterFunc(os.Exit).
func HalterFunc(f func(int)) Halter { return haltFunc(f) }
