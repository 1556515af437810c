package uniqueids

import "github.com/mosaicnetworks/maelnode/src/message"

// Payload is the closed set of unique-id variants.
type Payload interface {
	message.Payload
	isUniqueIDsPayload()
}

// Generate asks for a new identifier.
type Generate struct{}

// Type implements message.Payload
func (*Generate) Type() string { return "generate" }

func (*Generate) isUniqueIDsPayload() {}

// GenerateOk carries a generated identifier.
type GenerateOk struct {
	ID string `json:"id"`
}

// Type implements message.Payload
func (*GenerateOk) Type() string { return "generate_ok" }

func (*GenerateOk) isUniqueIDsPayload() {}

// NewCodec returns the Codec for unique-id nodes.
func NewCodec() *message.Codec[Payload] {
	return message.NewCodec(
		func() Payload { return new(Generate) },
		func() Payload { return new(GenerateOk) },
	)
}
