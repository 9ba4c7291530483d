package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/metrics"
)

type ping struct{}

func call(t *testing.T, interceptor connect.UnaryInterceptorFunc, err error) error {
	t.Helper()
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&ping{}), nil
	})
	_, got := interceptor(next)(context.Background(), connect.NewRequest(&ping{}))
	return got
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{"success", nil, "level=INFO", "RPC ok"},
		{"client error", connect.NewError(connect.CodeNotFound, errors.New("missing")), "level=WARN", "code=not_found"},
		{"internal error", connect.NewError(connect.CodeInternal, errors.New("boom")), "level=ERROR", "code=internal"},
		{"plain error", errors.New("plain"), "level=ERROR", "error=plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			err := call(t, LoggingInterceptor(logger), tt.err)
			assert.Equal(t, tt.err, err)
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), tt.wantMsg)
			assert.Contains(t, buf.String(), "duration_ms=")
		})
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	interceptor := MetricsInterceptor(metrics.New(reg))

	require.NoError(t, call(t, interceptor, nil))
	require.Error(t, call(t, interceptor, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))))

	families, err := reg.Gather()
	require.NoError(t, err)

	codes := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "splitledger_rpc_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "code" {
					codes[l.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"ok": 1, "invalid_argument": 1}, codes)
}

func TestMetricsInterceptor_NilMetrics(t *testing.T) {
	assert.NoError(t, call(t, MetricsInterceptor(nil), nil))
}
