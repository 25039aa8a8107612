package gphoto2

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string

	sub, err := AddLogFunc(LogDebug, func(e LogEntry) {
		if e.Domain != "log-order" {
			return
		}
		mu.Lock()
		got = append(got, e.Message)
		mu.Unlock()
	})
	require.NoError(t, err)

	var want []string
	for i := 0; i < 100; i++ {
		msg := fmt.Sprintf("line %d", i)
		Log(LogDebug, "log-order", msg)
		want = append(want, msg)
	}
	require.NoError(t, sub.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, got)
	assert.Zero(t, sub.Dropped())

	require.NoError(t, sub.Close(), "second close is a no-op")
}

func TestLogLevelFilter(t *testing.T) {
	var mu sync.Mutex
	var got []LogLevel

	sub, err := AddLogFunc(LogVerbose, func(e LogEntry) {
		if e.Domain != "log-level" {
			return
		}
		mu.Lock()
		got = append(got, e.Level)
		mu.Unlock()
	})
	require.NoError(t, err)

	Log(LogError, "log-level", "error")
	Log(LogVerbose, "log-level", "verbose")
	Log(LogDebug, "log-level", "debug")
	Log(LogData, "log-level", "data")
	require.NoError(t, sub.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []LogLevel{LogError, LogVerbose}, got)
}

func TestLogAfterClose(t *testing.T) {
	calls := 0
	sub, err := AddLogFunc(LogDebug, func(e LogEntry) {
		if e.Domain == "log-closed" {
			calls++
		}
	})
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	Log(LogError, "log-closed", "nobody listens")
	assert.Zero(t, calls)
}

func TestLogToZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	sub, err := LogToZerolog(LogDebug, logger)
	require.NoError(t, err)
	Log(LogError, "log-zerolog", "lens error")
	require.NoError(t, sub.Close())

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"domain":"log-zerolog"`)
	assert.Contains(t, buf.String(), `"message":"lens error"`)
}

func TestLogLevelMapping(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, LogError.ZerologLevel())
	assert.Equal(t, zerolog.InfoLevel, LogVerbose.ZerologLevel())
	assert.Equal(t, zerolog.DebugLevel, LogDebug.ZerologLevel())
	assert.Equal(t, zerolog.TraceLevel, LogData.ZerologLevel())
}
