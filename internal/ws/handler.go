package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"callforecast/internal/forecast"
	"callforecast/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes messages to the
// forecast service.
type Handler struct {
	hub    *Hub
	svc    *forecast.Service
	bridge *Bridge
	log    zerolog.Logger
}

func NewHandler(hub *Hub, svc *forecast.Service, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, svc: svc, bridge: NewBridge(hub, log), log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendDirectoryLoaded(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Warn().Err(err).Msg("invalid message")
		return
	}

	switch env.Type {
	case TypeForecastRun:
		var p ForecastRunPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.sendError(c, "invalid forecast:run payload")
			return
		}
		h.runForecast(c, p)

	default:
		h.log.Warn().Str("type", env.Type).Msg("unknown message type")
	}
}

func (h *Handler) runForecast(c *Client, p ForecastRunPayload) {
	start, err := model.ParseTimestamp(p.Start)
	if err != nil {
		h.sendError(c, "invalid start timestamp: "+p.Start)
		return
	}

	res, err := h.svc.Forecast(forecast.Request{
		Start:    start,
		Hours:    p.Hours,
		Units:    model.CensusInput(p.Units),
		Selected: p.Selected,
	})
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	// Every subscriber sees the new forecast, the requester included.
	h.bridge.OnResult(res)
}

func (h *Handler) sendError(c *Client, message string) {
	msg, err := NewEnvelope(TypeForecastError, ForecastErrorPayload{Message: message})
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Handler) sendDirectoryLoaded(c *Client) {
	entries := h.svc.Directory().Entries()
	units := make([]UnitInfo, 0, len(entries))
	for _, e := range entries {
		units = append(units, UnitInfo{
			UnitName:       e.UnitName,
			HospitalName:   e.HospitalName,
			OrganizationID: e.OrganizationID,
		})
	}

	msg, err := NewEnvelope(TypeDirectoryLoaded, DirectoryLoadedPayload{
		Units:      units,
		Categories: h.svc.Categories(),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("marshaling directory:loaded")
		return
	}

	select {
	case c.send <- msg:
	default:
	}
}
