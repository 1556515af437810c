package broadcast

import "github.com/mosaicnetworks/maelnode/src/message"

// Payload is the closed set of broadcast variants.
type Payload interface {
	message.Payload
	isBroadcastPayload()
}

// Broadcast hands a value to the node.
type Broadcast struct {
	Message int `json:"message"`
}

// Type implements message.Payload
func (*Broadcast) Type() string { return "broadcast" }

func (*Broadcast) isBroadcastPayload() {}

// BroadcastOk acknowledges Broadcast.
type BroadcastOk struct{}

// Type implements message.Payload
func (*BroadcastOk) Type() string { return "broadcast_ok" }

func (*BroadcastOk) isBroadcastPayload() {}

// Read asks for every value the node has seen.
type Read struct{}

// Type implements message.Payload
func (*Read) Type() string { return "read" }

func (*Read) isBroadcastPayload() {}

// ReadOk lists the values seen, in the order they were first received.
type ReadOk struct {
	Messages []int `json:"messages"`
}

// Type implements message.Payload
func (*ReadOk) Type() string { return "read_ok" }

func (*ReadOk) isBroadcastPayload() {}

// Topology tells each node who its neighbours are.
type Topology struct {
	Topology map[string][]string `json:"topology"`
}

// Type implements message.Payload
func (*Topology) Type() string { return "topology" }

func (*Topology) isBroadcastPayload() {}

// TopologyOk acknowledges Topology.
type TopologyOk struct{}

// Type implements message.Payload
func (*TopologyOk) Type() string { return "topology_ok" }

func (*TopologyOk) isBroadcastPayload() {}

// NewCodec returns the Codec for broadcast nodes.
func NewCodec() *message.Codec[Payload] {
	return message.NewCodec(
		func() Payload { return new(Broadcast) },
		func() Payload { return new(BroadcastOk) },
		func() Payload { return new(Read) },
		func() Payload { return new(ReadOk) },
		func() Payload { return new(Topology) },
		func() Payload { return new(TopologyOk) },
	)
}
