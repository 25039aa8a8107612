package liveview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterSource() (Source, *atomic.Int64) {
	var n atomic.Int64
	return SourceFunc(func(ctx context.Context) ([]byte, error) {
		return []byte(fmt.Sprintf("frame %d", n.Add(1))), nil
	}), &n
}

func startServer(t *testing.T, src Source) (*Server, *httptest.Server) {
	t.Helper()

	s := NewServer(src, 5*time.Millisecond, zerolog.Nop())
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) (*websocket.Conn, string) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	var hello msg
	require.NoError(t, ws.ReadJSON(&hello))
	assert.Equal(t, msgTypeHello, hello.Type)

	id, _ := hello.Payload.(string)
	require.NotEmpty(t, id)
	return ws, id
}

func readFrame(t *testing.T, ws *websocket.Conn) string {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		typ, data, err := ws.ReadMessage()
		require.NoError(t, err)
		if typ == websocket.BinaryMessage {
			return string(data)
		}
	}
}

func TestFanOut(t *testing.T) {
	src, _ := counterSource()
	_, ts := startServer(t, src)

	a, idA := dial(t, ts)
	b, idB := dial(t, ts)
	assert.NotEqual(t, idA, idB)

	assert.True(t, strings.HasPrefix(readFrame(t, a), "frame "))
	assert.True(t, strings.HasPrefix(readFrame(t, b), "frame "))
}

func TestFramesInOrder(t *testing.T) {
	src, _ := counterSource()
	_, ts := startServer(t, src)
	ws, _ := dial(t, ts)

	last := 0
	for i := 0; i < 5; i++ {
		var n int
		_, err := fmt.Sscanf(readFrame(t, ws), "frame %d", &n)
		require.NoError(t, err)
		assert.Greater(t, n, last)
		last = n
	}
}

func TestStatus(t *testing.T) {
	src, n := counterSource()
	s, ts := startServer(t, src)
	dial(t, ts)

	require.Eventually(t, func() bool { return n.Load() > 2 }, 2*time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return s.Status().Clients == 1 }, 2*time.Second, time.Millisecond)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "liveview", st.Service)
	assert.Equal(t, 1, st.Clients)
	assert.NotZero(t, st.Frames)
	assert.Zero(t, st.Errors)
}

func TestSnapshot(t *testing.T) {
	src, n := counterSource()
	_, ts := startServer(t, src)

	require.Eventually(t, func() bool { return n.Load() > 0 }, 2*time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/snapshot")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.HasPrefix(string(body), "frame ")
	}, 2*time.Second, time.Millisecond)
}

func TestSnapshotBeforeFirstFrame(t *testing.T) {
	s := NewServer(SourceFunc(func(context.Context) ([]byte, error) { return nil, nil }), time.Hour, zerolog.Nop())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSourceErrors(t *testing.T) {
	s, ts := startServer(t, SourceFunc(func(context.Context) ([]byte, error) {
		return nil, errors.New("camera busy")
	}))
	ws, _ := dial(t, ts)

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m msg
	require.NoError(t, ws.ReadJSON(&m))
	assert.Equal(t, msgTypeError, m.Type)
	assert.Equal(t, "camera busy", m.Payload)

	st := s.Status()
	assert.NotZero(t, st.Errors)
	assert.Equal(t, "camera busy", st.LastError)
	assert.Zero(t, st.Frames)
}

func TestClientLeaves(t *testing.T) {
	src, _ := counterSource()
	s, ts := startServer(t, src)
	ws, _ := dial(t, ts)

	require.Eventually(t, func() bool { return s.Status().Clients == 1 }, 2*time.Second, time.Millisecond)
	ws.Close()
	require.Eventually(t, func() bool { return s.Status().Clients == 0 }, 2*time.Second, time.Millisecond)
}

func TestConnSendKeepsNewest(t *testing.T) {
	c := newConn("id", nil)
	c.Send([]byte("a"))
	c.Send([]byte("b"))
	assert.Equal(t, "b", string(<-c.frames))
}
