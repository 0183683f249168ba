// Package spectate streams game snapshots to websocket viewers.
package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/kurve/internal/loop"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufSize    = 8
)

// marshal encodes snapshots for the wire.
var marshal = msgpack.Marshal

// Server keeps one feed per running game.
type Server struct {
	mu       sync.Mutex
	feeds    map[string]*Feed
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer creates an empty server. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		feeds: make(map[string]*Feed),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Open returns the feed for id, creating it if needed.
func (s *Server) Open(id string) *Feed {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.feeds[id]; ok {
		return f
	}
	f := &Feed{
		id:     id,
		server: s,
		subs:   make(map[*subscriber]struct{}),
	}
	s.feeds[id] = f
	s.logger.Info("feed opened", "game", id)
	return f
}

// Publish sends snap to every viewer of game id. Unknown ids are ignored.
func (s *Server) Publish(id string, snap loop.Snapshot) {
	if f := s.feed(id); f != nil {
		f.Publish(snap)
	}
}

// Close ends game id and disconnects its viewers.
func (s *Server) Close(id string) {
	if f := s.feed(id); f != nil {
		f.Close()
	}
}

// IDs lists the live games in sorted order.
func (s *Server) IDs() []string {
	s.mu.Lock()
	ids := make([]string, 0, len(s.feeds))
	for id := range s.feeds {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)
	return ids
}

func (s *Server) feed(id string) *Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feeds[id]
}

func (s *Server) remove(f *Feed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feeds[f.id] == f {
		delete(s.feeds, f.id)
	}
}

// Routes registers the spectator endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/games", s.handleList)
	r.Get("/games/{id}/ws", s.handleWatch)
}

// Handler returns a router serving only the spectator endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(s.IDs()); err != nil {
		s.logger.Error("encode game list", "err", err)
	}
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f := s.feed(id)
	if f == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "game", id, "err", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBufSize)}
	if !f.subscribe(sub) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "game over"))
		conn.Close()
		return
	}
	s.logger.Debug("viewer joined", "game", id, "remote", r.RemoteAddr)

	go sub.writePump()
	sub.readPump(s.logger)

	f.unsubscribe(sub)
	s.logger.Debug("viewer left", "game", id, "remote", r.RemoteAddr)
}

// Feed fans snapshots of one game out to its viewers.
type Feed struct {
	id     string
	server *Server

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	latest *loop.Snapshot
	closed bool
}

// ID returns the game id of the feed.
func (f *Feed) ID() string {
	return f.id
}

// Publish encodes snap and queues it for every viewer. Viewers whose
// queue is full miss the frame. Without viewers the snapshot is only kept
// for the next one to join.
func (f *Feed) Publish(snap loop.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.latest = &snap
	if len(f.subs) == 0 {
		return
	}

	data, err := marshal(&snap)
	if err != nil {
		f.server.logger.Error("encode snapshot", "game", f.id, "err", err)
		return
	}
	for sub := range f.subs {
		select {
		case sub.send <- data:
		default:
		}
	}
}

// Close disconnects all viewers and removes the feed from its server.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for sub := range f.subs {
		close(sub.send)
		delete(f.subs, sub)
	}
	f.mu.Unlock()

	f.server.remove(f)
	f.server.logger.Info("feed closed", "game", f.id)
}

// subscribe registers sub and queues the latest snapshot for it.
// It reports false once the feed is closed.
func (f *Feed) subscribe(sub *subscriber) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.subs[sub] = struct{}{}
	if f.latest != nil {
		data, err := marshal(f.latest)
		if err != nil {
			f.server.logger.Error("encode snapshot", "game", f.id, "err", err)
			return true
		}
		sub.send <- data
	}
	return true
}

func (f *Feed) unsubscribe(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub]; ok {
		delete(f.subs, sub)
		close(sub.send)
	}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// readPump discards viewer messages and returns when the connection drops.
func (s *subscriber) readPump(logger *log.Logger) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read", "err", err)
			}
			return
		}
	}
}

// writePump sends queued snapshots and pings until send is closed.
func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
