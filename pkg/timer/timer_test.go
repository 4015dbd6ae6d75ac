package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStopwatch(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sw := NewStopwatch(zap.New(core))

	sw.Lap("accounts")
	sw.Lap("collections")
	total := sw.Total("bootstrap")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "accounts", entries[0].ContextMap()["step"])
	assert.Equal(t, "collections", entries[1].ContextMap()["step"])
	assert.Equal(t, "bootstrap", entries[2].ContextMap()["name"])
	assert.GreaterOrEqual(t, total, sw.last.Sub(sw.start))
}

func TestTrack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	done := Track(zap.New(core), "verify")
	done()

	require.Equal(t, 1, logs.FilterField(zap.String("name", "verify")).Len())
}
