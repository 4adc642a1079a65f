package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/eventstore"
	"github.com/AntonStoeckl/library-circulation/testutil/testdoubles"
)

func Test_CommandStatusFrom(t *testing.T) {
	testCases := []struct {
		description string
		result      shell.HandlerResult
		err         error
		expected    string
	}{
		{"success", shell.HandlerResult{}, nil, shell.StatusSuccess},
		{"idempotent", shell.HandlerResult{Idempotent: true}, nil, shell.StatusIdempotent},
		{"canceled", shell.HandlerResult{}, context.Canceled, shell.StatusCanceled},
		{"timeout", shell.HandlerResult{}, fmt.Errorf("query: %w", context.DeadlineExceeded), shell.StatusTimeout},
		{"conflict", shell.HandlerResult{}, eventstore.ErrConcurrencyConflict, shell.StatusConcurrencyConflict},
		{"rejected", shell.HandlerResult{}, core.OutOfStock("b-1"), shell.StatusRejected},
		{"error", shell.HandlerResult{}, errors.New("db down"), shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, shell.CommandStatusFrom(tc.result, tc.err, core.IsDomainError))
		})
	}
}

func Test_RecordCommandMetrics_CountsStatusSpecificCounters(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()

	// act
	shell.RecordCommandMetrics(context.Background(), metrics, "ReturnBook", shell.StatusRejected, 3*time.Millisecond)

	// assert
	labels := shell.BuildCommandLabels("ReturnBook", shell.StatusRejected)
	assert.True(t, metrics.HasDuration(shell.CommandHandlerDurationMetric, labels))
	assert.True(t, metrics.HasCounter(shell.CommandHandlerCallsMetric, labels))
	assert.True(t, metrics.HasCounter(shell.CommandHandlerRejectedMetric, labels))
	assert.Equal(t, 0, metrics.CounterCount(shell.CommandHandlerIdempotentMetric))
}

func Test_LogCommandStart_PrefersTheContextualLogger(t *testing.T) {
	plain := testdoubles.NewLoggerSpy()
	contextual := testdoubles.NewLoggerSpy()

	shell.LogCommandStart(context.Background(), plain, contextual, "PayFine")

	assert.Empty(t, plain.Records())
	assert.True(t, contextual.HasMessage("info", shell.LogMsgCommandStarted))
}
