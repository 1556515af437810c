package node

import (
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/pkg/errors"
)

// InitReplyID is the msg_id of the init_ok reply, the first id a node uses.
const InitReplyID uint64 = 0

var initCodec = message.NewInitCodec()

// Handshake decodes the first line of a run and builds the init_ok reply.
// Anything but a well-formed init message is fatal.
func Handshake(line []byte) (message.Init, []byte, error) {
	var info message.Init

	m, err := initCodec.Decode(line)
	if err != nil {
		if errors.Is(err, message.ErrUnknownType) {
			return info, nil, errors.Wrap(ErrNotInit, err.Error())
		}
		return info, nil, errors.Wrap(err, "init message could not be deserialized")
	}

	payload, ok := m.Body.Payload.(*message.Init)
	if !ok {
		return info, nil, errors.Wrapf(ErrNotInit, "got %s", m.Body.Payload.Type())
	}
	if payload.NodeID == "" {
		return info, nil, errors.Wrap(ErrNotInit, "init carries no node_id")
	}
	info = *payload

	reply := m.Reply(InitReplyID, &message.InitOk{})
	reply.Src = info.NodeID

	replyLine, err := initCodec.Encode(reply)
	if err != nil {
		return info, nil, errors.Wrap(err, "serialize init_ok")
	}

	return info, replyLine, nil
}
