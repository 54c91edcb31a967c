package logging

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewConsoleLogger(t *testing.T) {
	asserts := assert.New(t)

	l := NewConsoleLogger(LevelError)
	asserts.NotPanics(func() {
		l.Debug("debug %s", "muted")
		l.Info("info %s", "muted")
		l.Warning("warning %s", "muted")
		l.Error("error %s", "printed")
	})
	asserts.Panics(func() {
		l.Panic("boom")
	})
}

func TestFromContext(t *testing.T) {
	asserts := assert.New(t)

	// nothing attached
	asserts.NotNil(FromContext(context.Background()))

	// fallback
	fallback := NewConsoleLogger(LevelWarning)
	asserts.Equal(fallback, FromContext(context.Background(), fallback))

	// attached
	l := NewConsoleLogger(LevelDebug).CopyWithPrefix("[test]")
	ctx := WithLogger(context.Background(), l)
	asserts.Equal(l, FromContext(ctx, fallback))
}

func TestCorrelationID(t *testing.T) {
	asserts := assert.New(t)
	asserts.Equal(uuid.Nil, CorrelationID(context.Background()))

	id := uuid.Must(uuid.NewV4())
	ctx := context.WithValue(context.Background(), CorrelationIDCtx{}, id)
	asserts.Equal(id, CorrelationID(ctx))
}
