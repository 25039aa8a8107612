package liveview

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeTimeout = 2 * time.Second

type conn struct {
	ID string

	wsMu sync.Mutex
	ws   *websocket.Conn

	frames    chan []byte
	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(id string, ws *websocket.Conn) *conn {
	return &conn{
		ID:     id,
		ws:     ws,
		frames: make(chan []byte, 1),
		closed: make(chan struct{}),
	}
}

// Send queues a frame, replacing one that hasn't been written yet.
func (c *conn) Send(frame []byte) {
	for {
		select {
		case c.frames <- frame:
			return
		default:
		}
		select {
		case <-c.frames:
		default:
		}
	}
}

func (c *conn) WriteJSON(v interface{}) error {
	c.wsMu.Lock()
	defer c.wsMu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

func (c *conn) writeFrame(frame []byte) error {
	c.wsMu.Lock()
	defer c.wsMu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.BinaryMessage, frame)
}

func (c *conn) writeLoop(log zerolog.Logger) {
	for {
		select {
		case frame := <-c.frames:
			if err := c.writeFrame(frame); err != nil {
				log.Debug().Err(err).Msg("frame write failed")
				c.ws.Close()
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *conn) Close(code int, reason string) error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)

		deadline := time.Now().Add(100 * time.Millisecond)
		c.wsMu.Lock()
		c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		c.wsMu.Unlock()

		err = c.ws.Close()
	})
	return err
}
