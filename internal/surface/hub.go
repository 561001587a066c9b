// Package surface implements the map surface over WebSocket. The Go
// side owns no rendering: it pushes viewport and marker messages to
// connected browsers (which draw them with Leaflet) and forwards click
// events back into the core.
package surface

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/kc95kc/music-map/pkg/types"
)

// Hub maintains the connected browser clients and the last pushed state,
// which is replayed to clients that connect late.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	mu            sync.RWMutex
	clients       map[*client]bool
	onClick       func(lat, lon float64)
	onMarkerClick func(pinID string)
	onCommand     func(Command)
	lastView      []byte
	lastMarkers   []byte
}

// Compile-time interface check: Hub must implement MapSurface.
var _ types.MapSurface = (*Hub)(nil)

// NewHub creates a hub with no connected clients.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*client]bool),
	}
}

// Run processes client registration and broadcast fan-out. It blocks;
// run it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			replay := [][]byte{}
			if h.lastView != nil {
				replay = append(replay, h.lastView)
			}
			if h.lastMarkers != nil {
				replay = append(replay, h.lastMarkers)
			}
			h.mu.Unlock()
			for _, msg := range replay {
				c.send <- msg
			}

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client; drop it rather than stall the map.
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// OnClick registers the handler for map-surface clicks.
func (h *Hub) OnClick(fn func(lat, lon float64)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClick = fn
}

// OnCommand registers the handler for non-click client commands such as
// the submission workflow messages.
func (h *Hub) OnCommand(fn func(Command)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCommand = fn
}

// SetView pans and zooms every connected client and records the target
// for late joiners.
func (h *Hub) SetView(lat, lon float64, zoom int) {
	msg := marshalMessage(outMessage{
		Type: msgView,
		View: &types.Viewset{Lat: lat, Lon: lon, Zoom: zoom},
	})
	h.mu.Lock()
	h.lastView = msg
	h.mu.Unlock()
	h.broadcast <- msg
}

// RenderMarkers replaces the marker set on every connected client. Pins
// without both coordinates are skipped here, at the rendering boundary;
// the repository collection behind them is untouched.
func (h *Hub) RenderMarkers(pins []types.Pin, onMarkerClick func(pinID string)) {
	renderable := make([]types.Pin, 0, len(pins))
	for _, p := range pins {
		if p.HasLocation() {
			renderable = append(renderable, p)
		}
	}

	msg := marshalMessage(outMessage{Type: msgMarkers, Pins: renderable})
	h.mu.Lock()
	h.onMarkerClick = onMarkerClick
	h.lastMarkers = msg
	h.mu.Unlock()
	h.broadcast <- msg
}

// Publish pushes an arbitrary sidebar payload (mode changes, detail
// panels, inline errors) to every client.
func (h *Hub) Publish(msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("surface: marshal %s payload: %v", msgType, err)
		return
	}
	h.broadcast <- marshalMessage(outMessage{Type: msgType, Payload: raw})
}

// ServeWS upgrades an HTTP request to a client connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("surface: upgrade: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- c
	go c.writePump()
	go c.readPump()
}

// handleInbound dispatches one client message to the registered
// handlers. Unknown types are ignored so older pages stay harmless.
func (h *Hub) handleInbound(raw []byte) {
	var msg inMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("surface: bad client message: %v", err)
		return
	}

	h.mu.RLock()
	onClick := h.onClick
	onMarkerClick := h.onMarkerClick
	onCommand := h.onCommand
	h.mu.RUnlock()

	switch msg.Type {
	case msgClick:
		if onClick != nil {
			onClick(msg.Lat, msg.Lon)
		}
	case msgMarkerClick:
		if onMarkerClick != nil {
			onMarkerClick(msg.PinID)
		}
	default:
		if onCommand == nil {
			return
		}
		cmd := Command{Type: msg.Type, Name: msg.Name, Value: msg.Value, Filename: msg.Filename}
		if msg.Content != "" {
			content, err := base64.StdEncoding.DecodeString(msg.Content)
			if err != nil {
				log.Printf("surface: bad image content: %v", err)
				return
			}
			cmd.Content = content
		}
		onCommand(cmd)
	}
}

func marshalMessage(msg outMessage) []byte {
	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("surface: marshal: %v", err)
		return []byte("{}")
	}
	return raw
}
