package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation/eventstore/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordDuration("eventstore_query_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "query",
		"status":    "success",
	})

	// assert
	histogram := findMetric[metricdata.Histogram[float64]](t, reader, "eventstore_query_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("operation", "query"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter_ReusesInstrument(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	labels := map[string]string{"operation": "append"}

	// act
	collector.IncrementCounter("eventstore_concurrency_conflicts_total", labels)
	collector.IncrementCounterContext(context.Background(), "eventstore_concurrency_conflicts_total", labels)

	// assert
	sum := findMetric[metricdata.Sum[int64]](t, reader, "eventstore_concurrency_conflicts_total")
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordValue("eventstore_events_queried_total", 3, nil)
	collector.RecordValueContext(context.Background(), "eventstore_events_queried_total", 5, nil)

	// assert
	gauge := findMetric[metricdata.Gauge[float64]](t, reader, "eventstore_events_queried_total")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, float64(5), gauge.DataPoints[0].Value)
}

func findMetric[T any](t *testing.T, reader *sdkmetric.ManualReader, name string) T {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name != name {
				continue
			}

			data, ok := m.Data.(T)
			require.True(t, ok, "metric %s has unexpected data type %T", name, m.Data)

			return data
		}
	}

	require.Failf(t, "metric not found", "metric %s was not recorded", name)

	var zero T
	return zero
}
