// Package bootstrap assembles the hosted (non-bare-metal) process: it
// builds the obslog.Logger and the threadcore.Table from Config,
// supplies the table to an fx.App, and runs the demo setup() hook and
// the scheduler from the app's start hook, the generalized form of
// cmd/inos-node/main.go's hand-wired construction. fx's own lifecycle
// logging goes through zap via fxevent.ZapLogger; the runtime's domain
// events still go through obslog exclusively.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nmxmxh/cothread/internal/obslog"
	"github.com/nmxmxh/cothread/internal/threadcore"
)

// Params configures one hosted run.
type Params struct {
	Config threadcore.Config
	Output io.Writer // defaults to os.Stdout
	Setup  func(tbl *threadcore.Table)
	// Signals, when nil, is populated with a real os/signal.Notify
	// channel watching SIGINT/SIGTERM.
	Signals chan os.Signal
}

// Run builds the fx.App, starts it, blocks until the scheduler finishes
// or a signal arrives, then stops the app. Mirrors
// kernel/utils/graceful.go's GracefulShutdown, generalized from a LIFO
// shutdown-func list into a first-to-finish wait on the scheduler and a
// signal watcher (see runHosted).
func Run(p Params) error {
	if p.Output == nil {
		p.Output = os.Stdout
	}
	if p.Signals == nil {
		p.Signals = make(chan os.Signal, 1)
		signal.Notify(p.Signals, syscall.SIGINT, syscall.SIGTERM)
	}

	runID := uuid.New()
	log := obslog.New(obslog.Config{Output: p.Output})
	tbl := threadcore.New(p.Config, log, p.Output, threadcore.HalterFunc(os.Exit))

	zapLog, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("bootstrap: build zap logger: %w", err)
	}
	defer zapLog.Sync() //nolint:errcheck

	// runHosted drives the scheduler to completion (or forever, for demos
	// that only stop via tbl.Exit's os.Exit), which can easily outlast
	// fx's own startup window — so OnStart only launches it, it never
	// blocks inside the hook itself.
	runDone := make(chan error, 1)
	app := fx.New(
		fx.Supply(tbl),
		fx.WithLogger(func() fxevent.Logger { return &fxevent.ZapLogger{Logger: zapLog} }),
		fx.Invoke(func(lc fx.Lifecycle, tbl *threadcore.Table) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					log.Info("starting hosted runtime", obslog.String("run_id", runID.String()))
					go func() { runDone <- runHosted(tbl, p.Setup, p.Signals) }()
					return nil
				},
			})
		}),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("bootstrap: fx start: %w", err)
	}

	runErr := <-runDone

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("bootstrap: fx stop: %w", err)
	}
	return runErr
}

// runHosted runs the scheduler alongside a watcher for sig and returns
// as soon as either finishes. The scheduler runs on its own goroutine
// outside the errgroup, so a signal returns without waiting for it; the
// errgroup joins only the watcher. Extracted from Run so it can be
// exercised directly with a synthetic signal channel.
func runHosted(tbl *threadcore.Table, setup func(*threadcore.Table), sig <-chan os.Signal) error {
	g, ctx := errgroup.WithContext(context.Background())
	done := make(chan struct{})

	go func() {
		tbl.Entry(setup)
		close(done)
	}()

	g.Go(func() error {
		select {
		case s := <-sig:
			return fmt.Errorf("bootstrap: received signal %v: %w", s, errInterrupted)
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		}
	})

	return g.Wait()
}

var errInterrupted = errors.New("interrupted")
