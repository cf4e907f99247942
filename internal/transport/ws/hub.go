// Package ws streams quiz session events to connected pages over WebSocket.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

const writeWait = 5 * time.Second

// Conn is one page connected to a session.
type Conn struct {
	session uuid.UUID
	ws      *websocket.Conn
	mu      sync.Mutex // serializes writes
}

func (c *Conn) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Hub tracks the connections of every session and fans quiz events out to
// them. It is the quiz service's presenter.
type Hub struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]map[*Conn]struct{}
	log   *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		conns: make(map[uuid.UUID]map[*Conn]struct{}),
		log:   log.With("handler", "ws"),
	}
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.session]
	if !ok {
		set = make(map[*Conn]struct{})
		h.conns[c.session] = set
	}
	set[c] = struct{}{}
}

// unregister removes c and reports whether it was still registered.
func (h *Hub) unregister(c *Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.session]
	if !ok {
		return false
	}
	if _, ok := set[c]; !ok {
		return false
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, c.session)
	}
	return true
}

// connections returns a snapshot so writes happen without holding the lock.
func (h *Hub) connections(id uuid.UUID) []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Conn, 0, len(h.conns[id]))
	for c := range h.conns[id] {
		out = append(out, c)
	}
	return out
}

// Count returns the number of pages connected to a session.
func (h *Hub) Count(id uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[id])
}

func (h *Hub) broadcast(id uuid.UUID, msg ServerMessage) {
	receivers := h.connections(id)
	if len(receivers) == 0 {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal message", slog.String("type", string(msg.Type)), slog.String("error", err.Error()))
		return
	}
	for _, c := range receivers {
		if err := c.write(payload); err != nil {
			h.log.Warn("drop connection after failed write",
				slog.String("session_id", id.String()),
				slog.String("error", err.Error()),
			)
			h.drop(c)
		}
	}
}

func (h *Hub) send(c *Conn, msg ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.write(payload)
}

func (h *Hub) drop(c *Conn) {
	if h.unregister(c) {
		_ = c.ws.Close()
	}
}

// CloseSession disconnects every page of a session.
func (h *Hub) CloseSession(id uuid.UUID) {
	for _, c := range h.connections(id) {
		c.mu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		h.drop(c)
	}
}

// Close disconnects every page of every session.
func (h *Hub) Close() {
	h.mu.RLock()
	ids := make([]uuid.UUID, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.CloseSession(id)
	}
}

func (h *Hub) RenderQuestion(id uuid.UUID, view domain.QuestionView) {
	q := respond.ToQuestionDTO(view)
	h.broadcast(id, ServerMessage{Type: MessageTypeQuestion, Question: &q})
}

func (h *Hub) RenderTimer(id uuid.UUID, timer domain.TimerOutcome) {
	t := respond.ToTimerDTO(timer)
	h.broadcast(id, ServerMessage{Type: MessageTypeTimer, Timer: &t})
}

func (h *Hub) RenderScore(id uuid.UUID, score domain.ScoreSummary) {
	s := respond.ToScoreDTO(score)
	h.broadcast(id, ServerMessage{Type: MessageTypeScore, Score: &s})
}

func (h *Hub) ShowNotification(id uuid.UUID, n domain.Notification) {
	dto := respond.ToNotificationDTO(n)
	h.broadcast(id, ServerMessage{Type: MessageTypeNotification, Notification: &dto})
}
