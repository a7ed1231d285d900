package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewEngineMetrics(t *testing.T) {
	t.Parallel()

	em, err := NewEngineMetrics(noop.NewMeterProvider().Meter("test"))

	require.NoError(t, err)
	require.NotNil(t, em)

	// Recording against noop instruments must not panic.
	em.RecordBatch(context.Background(), 1000, 14000, time.Second)
	em.RecordStats(context.Background(), 9.3, 3.2, 0.01)
}

func TestNilEngineMetricsRecordsNothing(t *testing.T) {
	t.Parallel()

	var em *EngineMetrics

	em.RecordBatch(context.Background(), 1, 1, time.Millisecond)
	em.RecordStats(context.Background(), 0, 0, 0)
}

func TestDiagnosticsEndpoints(t *testing.T) {
	t.Parallel()

	diag, meter, err := Start("127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() {
		closeErr := diag.Close()
		assert.NoError(t, closeErr)
	})

	em, err := NewEngineMetrics(meter)
	require.NoError(t, err)

	em.RecordBatch(context.Background(), 1000, 14000, 250*time.Millisecond)
	em.RecordStats(context.Background(), 9.3, 3.2, 0.01)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, getErr := http.Get(fmt.Sprintf("http://%s%s", diag.Addr(), path))
		require.NoError(t, getErr)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", diag.Addr()))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	text := string(body)

	assert.True(t, strings.Contains(text, "pinormal_digits_total"), "metrics output missing digit counter: %s", text)
	assert.True(t, strings.Contains(text, "pinormal_stats_chi_squared"), "metrics output missing chi-squared gauge")
}
