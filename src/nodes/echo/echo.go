package echo

import (
	"fmt"

	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/mosaicnetworks/maelnode/src/node"
	"github.com/sirupsen/logrus"
)

// Handler answers every echo with an echo_ok carrying the same value.
type Handler struct {
	ids    *message.Sequence
	logger *logrus.Entry
}

// New is a node.Factory for echo handlers.
func New(info message.Init, conf *config.Config) (*Handler, error) {
	return &Handler{
		ids:    message.NewSequence(1),
		logger: conf.Logger().WithField("handler", "echo"),
	}, nil
}

// Step implements node.Handler
func (h *Handler) Step(msg message.Message[Payload], out node.Sink[Payload]) error {
	switch p := msg.Body.Payload.(type) {
	case *Echo:
		h.logger.WithField("echo", string(p.Echo)).Debug("Echo")
		return out.Send(msg.Reply(h.ids.Next(), &EchoOk{Echo: p.Echo}))
	case *EchoOk:
		return nil
	default:
		return fmt.Errorf("echo: unhandled payload %s", msg.Body.Payload.Type())
	}
}
