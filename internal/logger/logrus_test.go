package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestEntryFallback(t *testing.T) {
	e := Entry(context.Background())
	require.NotNil(t, e)
	require.Equal(t, Std(), e.Logger)
}

func TestWithField(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.Out = buf
	l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	ctx := WithLogEntry(context.Background(), logrus.NewEntry(l))
	ctx, e := WithField(ctx, "job", "light1")
	require.Equal(t, e, Entry(ctx))

	Entry(ctx).Info("rendered")
	require.Contains(t, buf.String(), "job=light1")
	require.Contains(t, buf.String(), "rendered")
}
