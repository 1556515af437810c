package echo

import (
	"encoding/json"

	"github.com/mosaicnetworks/maelnode/src/message"
)

// Payload is the closed set of echo variants.
type Payload interface {
	message.Payload
	isEchoPayload()
}

// Echo asks the node to send Echo back.
type Echo struct {
	Echo json.RawMessage `json:"echo"`
}

// Type implements message.Payload
func (*Echo) Type() string { return "echo" }

func (*Echo) isEchoPayload() {}

// EchoOk carries the echoed value.
type EchoOk struct {
	Echo json.RawMessage `json:"echo"`
}

// Type implements message.Payload
func (*EchoOk) Type() string { return "echo_ok" }

func (*EchoOk) isEchoPayload() {}

// NewCodec returns the Codec for echo nodes.
func NewCodec() *message.Codec[Payload] {
	return message.NewCodec(
		func() Payload { return new(Echo) },
		func() Payload { return new(EchoOk) },
	)
}
