package wsapi

import (
	"net/http"
	"sync"

	"github.com/streamfit/streamfit/pkg/utils"
)

// PointsHandler accepts WebSocket connections on /ws/points: one text frame
// per point is pushed onto the channel given at construction; binary
// frames are logged and ignored; a close frame ends that connection
// without affecting others or the streamer loop itself.
type PointsHandler struct {
	points chan<- []byte
	log    utils.Logger
}

// NewPointsHandler returns a handler that forwards accepted point text
// frames onto points.
func NewPointsHandler(points chan<- []byte, log utils.Logger) *PointsHandler {
	if log == nil {
		log = &utils.NullLogger{}
	}
	return &PointsHandler{points: points, log: log}
}

func (h *PointsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := Accept(w, r)
	if err != nil {
		h.log.Warn("websocket handshake failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		op, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		switch op {
		case opText:
			h.points <- payload
		case opBin:
			h.log.Warn("unsupported binary message on /ws/points, ignoring")
		}
	}
}

// Dispatcher fans serialized model snapshots out to every subscriber of
// /ws/models. Subscribers register by connecting; a subscriber whose write
// fails is dropped during that broadcast rather than causing the broadcast
// to abort: subscriber write errors are non-fatal. The lock is held only
// across the broadcast iteration itself, never across a fit step.
type Dispatcher struct {
	mu   sync.Mutex
	subs map[*Conn]struct{}
	log  utils.Logger
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher(log utils.Logger) *Dispatcher {
	if log == nil {
		log = &utils.NullLogger{}
	}
	return &Dispatcher{subs: make(map[*Conn]struct{}), log: log}
}

// ServeHTTP registers the caller as a subscriber on /ws/models and blocks
// until the connection ends (it never sends — it exists only to receive
// broadcasts and to detect when the peer goes away).
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := Accept(w, r)
	if err != nil {
		d.log.Warn("websocket handshake failed: %v", err)
		return
	}

	d.mu.Lock()
	d.subs[conn] = struct{}{}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.subs, conn)
		d.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends msg to every currently registered subscriber, dropping
// any whose write fails.
func (d *Dispatcher) Broadcast(msg []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for conn := range d.subs {
		if err := conn.WriteText(msg); err != nil {
			d.log.Info("dropping subscriber after write failure: %v", err)
			delete(d.subs, conn)
			conn.Close()
		}
	}
}

// SubscriberCount reports how many subscribers are currently registered.
func (d *Dispatcher) SubscriberCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
