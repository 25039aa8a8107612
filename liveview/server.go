// Package liveview streams camera preview frames to browsers over
// websockets.
package liveview

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Source produces preview frames, usually JPEG encoded.
type Source interface {
	Preview(ctx context.Context) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]byte, error)

func (f SourceFunc) Preview(ctx context.Context) ([]byte, error) { return f(ctx) }

type msgType string

const (
	msgTypeHello msgType = "hello"
	msgTypeError msgType = "error"
)

type msg struct {
	Type    msgType     `json:"type"`
	Payload interface{} `json:"payload"`
}

// Status is served as JSON on "/".
type Status struct {
	Service   string    `json:"service"`
	Clients   int       `json:"clients"`
	Frames    uint64    `json:"frames"`
	Errors    uint64    `json:"errors"`
	LastFrame time.Time `json:"last_frame,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// Server polls a Source and fans every frame out to the connected
// websocket clients. Slow clients miss frames instead of holding up the
// others.
type Server struct {
	src      Source
	interval time.Duration
	log      zerolog.Logger
	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[string]*conn

	statusMu  sync.Mutex
	frames    uint64
	errors    uint64
	latest    []byte
	lastFrame time.Time
	lastError string
}

// NewServer returns a server that grabs a frame from src every interval.
func NewServer(src Source, interval time.Duration, logger zerolog.Logger) *Server {
	return &Server{
		src:      src,
		interval: interval,
		log:      logger,
		clients:  make(map[string]*conn),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		s.HandleStatus(w, r)
	case "/ws":
		s.HandleWS(w, r)
	case "/snapshot":
		s.HandleSnapshot(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Status returns the current counters.
func (s *Server) Status() Status {
	s.clientsMu.Lock()
	clients := len(s.clients)
	s.clientsMu.Unlock()

	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	return Status{
		Service:   "liveview",
		Clients:   clients,
		Frames:    s.frames,
		Errors:    s.errors,
		LastFrame: s.lastFrame,
		LastError: s.lastError,
	}
}

func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(s.Status())
}

// HandleSnapshot serves the most recent frame.
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.statusMu.Lock()
	frame := s.latest
	s.statusMu.Unlock()

	if frame == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(frame))
	w.Write(frame)
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket.Upgrader error")
		return
	}

	c := newConn(uuid.NewString(), ws)
	log := s.log.With().Str("client", c.ID).Logger()

	if err := c.WriteJSON(msg{Type: msgTypeHello, Payload: c.ID}); err != nil {
		log.Warn().Err(err).Msg("hello write failed")
		c.Close(websocket.CloseInternalServerErr, "")
		return
	}

	s.clientsMu.Lock()
	s.clients[c.ID] = c
	s.clientsMu.Unlock()
	log.Info().Msg("client connected")

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, c.ID)
		s.clientsMu.Unlock()
		c.Close(websocket.CloseNormalClosure, "")
		log.Info().Msg("client disconnected")
	}()

	go c.writeLoop(log)

	// Clients don't send anything; reading detects when they leave.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// Run grabs and broadcasts frames until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		frame, err := s.src.Preview(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			s.recordError(err)
			continue
		}
		s.recordFrame(frame)
		s.broadcast(frame)
	}
}

func (s *Server) recordError(err error) {
	s.statusMu.Lock()
	s.errors++
	first := s.lastError != err.Error()
	s.lastError = err.Error()
	s.statusMu.Unlock()

	if first {
		s.log.Warn().Err(err).Msg("preview failed")
	}
	s.broadcastJSON(msg{Type: msgTypeError, Payload: err.Error()})
}

func (s *Server) recordFrame(frame []byte) {
	s.statusMu.Lock()
	s.frames++
	s.latest = frame
	s.lastFrame = time.Now()
	s.lastError = ""
	s.statusMu.Unlock()
}

func (s *Server) each(fn func(*conn)) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for _, c := range s.clients {
		fn(c)
	}
}

func (s *Server) broadcast(frame []byte) {
	s.each(func(c *conn) { c.Send(frame) })
}

func (s *Server) broadcastJSON(m msg) {
	s.each(func(c *conn) {
		go func() {
			if err := c.WriteJSON(m); err != nil {
				s.log.Debug().Err(err).Str("client", c.ID).Msg("error write failed")
			}
		}()
	})
}
