package node

import (
	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
)

// Handler is the node-specific logic driven by the dispatch loop. Step is
// called once per inbound message and must handle every variant of P, even if
// only to ignore it. A non-nil error is fatal.
type Handler[P message.Payload] interface {
	Step(msg message.Message[P], out Sink[P]) error
}

// Sink is where a Handler sends messages. Each Send writes and flushes one
// complete line before returning.
type Sink[P message.Payload] interface {
	Send(msg message.Message[P]) error
}

// Factory builds a Handler once the handshake has succeeded. It is called
// exactly once per process.
type Factory[P message.Payload, H Handler[P]] func(info message.Init, conf *config.Config) (H, error)
