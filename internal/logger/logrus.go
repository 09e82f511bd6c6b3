package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxKeyLog ctxKey = iota
)

var std = logrus.New()

// Std is the process-wide logger used when a context carries no entry.
func Std() *logrus.Logger { return std }

// Entry returns the entry stored in ctx, or a fresh entry on Std.
func Entry(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(ctxKeyLog).(*logrus.Entry); ok && e != nil {
		return e
	}
	return logrus.NewEntry(std)
}

func WithLogEntry(ctx context.Context, e *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKeyLog, e)
}

// WithField derives a child entry carrying key=value and stores it in ctx.
func WithField(ctx context.Context, key string, value interface{}) (context.Context, *logrus.Entry) {
	e := Entry(ctx).WithField(key, value)
	return WithLogEntry(ctx, e), e
}
