package uniqueids

import (
	"fmt"

	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/mosaicnetworks/maelnode/src/node"
	"github.com/mosaicnetworks/maelnode/src/peers"
	"github.com/sirupsen/logrus"
)

// Handler generates identifiers made of the node id and the msg_id of the
// reply that carries them. They are unique within a node because msg_ids
// never repeat, and unique across the cluster as long as node ids are.
type Handler struct {
	roster    *peers.Roster
	ids       *message.Sequence
	generated int
	logger    *logrus.Entry
}

// New is a node.Factory for unique-id handlers.
func New(info message.Init, conf *config.Config) (*Handler, error) {
	roster, err := peers.NewRoster(info.NodeID, info.NodeIDs)
	if err != nil {
		return nil, err
	}

	return &Handler{
		roster: roster,
		ids:    message.NewSequence(1),
		logger: conf.Logger().WithField("handler", "unique-ids"),
	}, nil
}

// Step implements node.Handler
func (h *Handler) Step(msg message.Message[Payload], out node.Sink[Payload]) error {
	switch msg.Body.Payload.(type) {
	case *Generate:
		id := h.ids.Next()
		guid := fmt.Sprintf("%s-%d", h.roster.Self(), id)
		h.generated++

		h.logger.WithField("id", guid).Debug("Generate")

		return out.Send(msg.Reply(id, &GenerateOk{ID: guid}))
	case *GenerateOk:
		return nil
	default:
		return fmt.Errorf("unique-ids: unhandled payload %s", msg.Body.Payload.Type())
	}
}

// Generated returns the number of identifiers handed out so far.
func (h *Handler) Generated() int {
	return h.generated
}
