package message

// InitPayload groups the handshake variants.
type InitPayload interface {
	Payload
	isInitPayload()
}

// Init is the first message of every run. It names the receiving node and
// lists every node in the cluster, in harness order.
type Init struct {
	NodeID  string   `json:"node_id"`
	NodeIDs []string `json:"node_ids"`
}

// Type implements Payload
func (*Init) Type() string { return "init" }

func (*Init) isInitPayload() {}

// InitOk acknowledges Init.
type InitOk struct{}

// Type implements Payload
func (*InitOk) Type() string { return "init_ok" }

func (*InitOk) isInitPayload() {}

// NewInitCodec returns the Codec used for the handshake line.
func NewInitCodec() *Codec[InitPayload] {
	return NewCodec(
		func() InitPayload { return new(Init) },
		func() InitPayload { return new(InitOk) },
	)
}
