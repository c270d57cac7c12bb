package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	chansorter "github.com/UberPyro/ChannelSorter2"
	"github.com/UberPyro/ChannelSorter2/events"
	"github.com/UberPyro/ChannelSorter2/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Follow channel events and keep positions sorted",
	Long: `Subscribes to the platform's rename and restore event subjects and
repositions each affected channel as events arrive. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		nc, err := connect()
		if err != nil {
			return err
		}
		defer nc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var opts []chansorter.Option
		var listenerOpts []events.ListenerOption
		var metricsSrv *http.Server

		if cfg.MetricsAddr != "" {
			registry := prometheus.NewRegistry()
			collector, err := metrics.NewPrometheus(registry)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}
			opts = append(opts, chansorter.WithMetrics(collector))
			listenerOpts = append(listenerOpts, events.WithMetrics(collector))

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server failed", "error", err)
				}
			}()
		}

		sorter, err := newSorter(nc, opts...)
		if err != nil {
			return err
		}

		listenerOpts = append(listenerOpts, events.WithLogger(logger))
		listener, err := events.NewListener(nc, cfg.Events, sorter, listenerOpts...)
		if err != nil {
			return err
		}
		if err := listener.Start(ctx); err != nil {
			return err
		}
		logger.Info("serving channel events", "nats", cfg.NATSURL)

		<-ctx.Done()

		listener.Stop()
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
		logger.Info("shut down")

		return nil
	},
}
