package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName is the instrumentation scope for all pinormal instruments.
const meterName = "pinormal"

// Diagnostics exposes health and Prometheus metrics endpoints over HTTP
// and owns the OTel meter provider backing the instruments.
type Diagnostics struct {
	server   *http.Server
	listener net.Listener
	provider *sdkmetric.MeterProvider
}

// Start creates a meter provider bridged to a Prometheus registry and
// serves /healthz, /readyz, and /metrics at addr. Each call uses an
// independent registry to avoid collector conflicts.
func Start(addr string) (*Diagnostics, metric.Meter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	mux := http.NewServeMux()
	mux.Handle("/healthz", healthHandler())
	mux.Handle("/readyz", healthHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	var lc net.ListenConfig

	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		shutdownErr := provider.Shutdown(context.Background())
		if shutdownErr != nil {
			slog.Warn("meter provider shutdown failed", "error", shutdownErr)
		}

		return nil, nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: mux}

	go func() {
		serveErr := srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Warn("diagnostics server stopped", "error", serveErr)
		}
	}()

	d := &Diagnostics{server: srv, listener: listener, provider: provider}

	return d, provider.Meter(meterName), nil
}

// Addr returns the address the server is listening on.
func (d *Diagnostics) Addr() string {
	return d.listener.Addr().String()
}

// Close shuts down the HTTP server and flushes the meter provider.
func (d *Diagnostics) Close() error {
	err := d.server.Shutdown(context.Background())

	providerErr := d.provider.Shutdown(context.Background())
	if err == nil {
		err = providerErr
	}

	if err != nil {
		return fmt.Errorf("shutdown diagnostics: %w", err)
	}

	return nil
}

// healthHandler reports liveness. The process has no external
// dependencies, so live and ready are the same check.
func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
