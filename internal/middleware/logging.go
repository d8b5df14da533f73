package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitfriends/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per
// call with the procedure, session, latency and result code. Client errors
// (bad input, missing selection) log at warn, server faults at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			sessionID := GetSessionID(ctx) // empty unless RequireSession ran first

			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("session_id", sessionID),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, slog.String("code", code.String()))
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				attrs = append(attrs, slog.String("error", connectErr.Message()))
			} else {
				attrs = append(attrs, slog.Any("error", err))
			}
			slog.LogAttrs(ctx, errorLevel(code), "RPC error", attrs...)
			return resp, err
		}
	}
}

func errorLevel(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// MetricsInterceptor returns a Connect interceptor that records handler
// latency by procedure and result code.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.RPCDuration.WithLabelValues(req.Spec().Procedure, code).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
