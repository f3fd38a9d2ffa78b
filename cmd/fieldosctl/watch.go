package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/diag"
	"github.com/fieldos/fieldos-client-go/internal/poll"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the dispatch board and serve local diagnostics",
	Long: "Runs the job/dispatch poller on a fixed interval, printing changes " +
		"as they arrive, and serves /metrics and /healthz on METRICS_ADDR.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		initCtx, initCancel := context.WithTimeout(ctx, 30*time.Second)
		err = a.requireSession(initCtx)
		initCancel()
		if err != nil {
			return err
		}

		a.branding.Load(ctx)
		fmt.Printf("== %s: dispatch watch ==\n", a.branding.Settings().PortalTitle)

		diagSrv := diag.NewServer(a.cfg.MetricsAddr, a.metrics, a.logger)
		diagSrv.Start()

		poller := poll.New("jobs", a.cfg.PollInterval, func(ctx context.Context) error {
			assignments, err := a.resources.ListDispatch(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("[%s] %d active assignments\n", time.Now().Format("15:04:05"), len(assignments))
			return nil
		}, a.metrics, a.logger)

		// Show data immediately, then fall into the interval loop.
		if err := poller.Refresh(ctx); err != nil {
			return err
		}
		poller.Start(ctx)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		a.logger.Info("watch: shutting down")
		poller.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := diagSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("watch: diagnostics shutdown failed", zap.Error(err))
		}

		snap := a.metrics.Snapshot()
		fmt.Printf("requests ok/failed: %d/%d  poll ticks: %d (suppressed %d)\n",
			snap.RequestsOK, snap.RequestsFailed, snap.PollTicks, snap.PollSuppressed)
		return nil
	},
}
