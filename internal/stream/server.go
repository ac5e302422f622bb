package stream

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"sand-ca/internal/core"

	"github.com/gorilla/websocket"
)

//go:embed viewer.html
var viewerPage []byte

const (
	// sendBuffer is how many frames may queue for one viewer before new
	// frames are dropped for it.
	sendBuffer = 2
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

// Server steps one sim and broadcasts its frames to every connected viewer.
// Only Run touches the sim once it has started.
type Server struct {
	sim      core.Sim
	name     string
	step     *core.FixedStep
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	tick    uint64
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer wraps sim and publishes its current state as the first frame.
func NewServer(sim core.Sim, tps int) *Server {
	s := &Server{
		sim:  sim,
		name: sim.Name(),
		step: core.NewFixedStep(tps),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	s.publish()
	return s
}

// Handler routes the viewer page, the frame socket and a health check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.Handle("/ws", s)
	mux.HandleFunc("/healthz", s.serveHealth)
	return mux
}

// Viewers returns the number of connected viewers.
func (s *Server) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Tick returns the tick of the latest published frame.
func (s *Server) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// ServeHTTP upgrades the request and streams frames until the viewer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.send <- s.latest
	}
	s.mu.Unlock()
	log.Printf("stream: viewer %s connected", r.RemoteAddr)

	go s.writePump(c)
	s.readPump(c)
	log.Printf("stream: viewer %s disconnected", r.RemoteAddr)
}

// readPump discards viewer messages so control frames are processed, and
// unregisters the viewer when the connection fails.
func (s *Server) readPump(c *client) {
	defer s.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// Run steps the sim at the configured rate and broadcasts a frame after every
// batch of ticks. It closes all viewers and returns when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.step.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return nil
		case now := <-ticker.C:
			n := s.step.Advance(now)
			if n == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				s.sim.Step()
			}
			s.mu.Lock()
			s.tick += uint64(n)
			s.mu.Unlock()
			s.publish()
		}
	}
}

func (s *Server) publish() {
	size := s.sim.Size()
	pixels := s.sim.Pixels()

	s.mu.Lock()
	defer s.mu.Unlock()
	frame := EncodeFrame(size.W, size.H, s.tick, pixels)
	s.latest = frame
	for c := range s.clients {
		select {
		case c.send <- frame:
		default:
			// slow viewer; it catches up on a later frame
		}
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(viewerPage)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := struct {
		Status  string `json:"status"`
		Sim     string `json:"sim"`
		Tick    uint64 `json:"tick"`
		Viewers int    `json:"viewers"`
	}{Status: "healthy", Sim: s.name, Tick: s.tick, Viewers: len(s.clients)}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
