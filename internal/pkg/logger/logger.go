// Package logger provides the injected application logger. Components take
// a Logger instead of reaching for a process-wide logging facade.
package logger

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const alertTimeout = 5 * time.Second

// Logger records application events with a title and structured data.
type Logger interface {
	Critical(title string, data map[string]any)
	Info(title string, data map[string]any)
}

// AlertPublisher forwards critical events to an operator channel.
type AlertPublisher interface {
	Publish(ctx context.Context, subject, message string) error
}

type zapLogger struct {
	z      *zap.Logger
	alerts AlertPublisher
}

// New wraps z. alerts may be nil.
func New(z *zap.Logger, alerts AlertPublisher) Logger {
	return &zapLogger{z: z, alerts: alerts}
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return New(zap.NewNop(), nil) }

// NewZap builds the process zap logger: JSON production output, or the
// console encoder in development.
func NewZap(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Critical logs at error level and publishes the alert in the background so
// the caller never waits on the alert channel.
func (l *zapLogger) Critical(title string, data map[string]any) {
	l.z.Error(title, append(fields(data), zap.Bool("critical", true))...)
	if l.alerts == nil {
		return
	}
	msg := encode(data)
	go l.publish(title, msg)
}

func (l *zapLogger) publish(title, msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()
	if err := l.alerts.Publish(ctx, title, msg); err != nil {
		l.z.Warn("alert publish failed", zap.String("title", title), zap.Error(err))
	}
}

func (l *zapLogger) Info(title string, data map[string]any) {
	l.z.Info(title, fields(data)...)
}

// fields converts data to zap fields in key order so output is stable.
func fields(data map[string]any) []zap.Field {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		if err, ok := data[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, data[k]))
	}
	return out
}

func encode(data map[string]any) string {
	plain := make(map[string]any, len(data))
	for k, v := range data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		plain[k] = v
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "{}"
	}
	return string(b)
}
