package ws

import (
	"github.com/rs/zerolog"

	"callforecast/internal/forecast"
)

// Bridge broadcasts completed forecast runs to every connected client,
// keeping the forecast service transport-free.
type Bridge struct {
	hub *Hub
	log zerolog.Logger
}

func NewBridge(hub *Hub, log zerolog.Logger) *Bridge {
	return &Bridge{hub: hub, log: log}
}

// OnResult pushes a finished forecast to all subscribers.
func (b *Bridge) OnResult(res *forecast.Result) {
	msg, err := NewEnvelope(TypeForecastResult, ResultPayloadFrom(res))
	if err != nil {
		b.log.Error().Err(err).Msg("marshaling forecast result")
		return
	}
	b.hub.Broadcast(msg)
}
