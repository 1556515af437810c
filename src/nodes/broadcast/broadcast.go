package broadcast

import (
	"fmt"

	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/mosaicnetworks/maelnode/src/node"
	"github.com/mosaicnetworks/maelnode/src/peers"
	"github.com/sirupsen/logrus"
)

// Handler records broadcast values locally and serves them back on read. It
// never forwards anything to its neighbours, so values only reach the nodes
// the clients send them to.
type Handler struct {
	roster *peers.Roster
	ids    *message.Sequence
	store  Store
	logger *logrus.Entry
}

// New is a node.Factory for broadcast handlers. With conf.Store set, values
// are kept in a fresh Badger database under conf.BadgerDir.
func New(info message.Init, conf *config.Config) (*Handler, error) {
	roster, err := peers.NewRoster(info.NodeID, info.NodeIDs)
	if err != nil {
		return nil, err
	}

	logger := conf.Logger().WithField("handler", "broadcast")

	var store Store
	if conf.Store {
		path, err := conf.BadgerDir(info.NodeID)
		if err != nil {
			return nil, err
		}

		logger.WithField("path", path).Debug("Creating badger store")

		store, err = NewBadgerStore(conf.DatabaseDir, path, logger.WithField("component", "badger"))
		if err != nil {
			return nil, err
		}
	} else {
		store = NewInmemStore()

		logger.Debug("Created new in-mem store")
	}

	return NewHandler(roster, store, logger), nil
}

// NewHandler builds a Handler on top of an existing Store.
func NewHandler(roster *peers.Roster, store Store, logger *logrus.Entry) *Handler {
	return &Handler{
		roster: roster,
		ids:    message.NewSequence(1),
		store:  store,
		logger: logger,
	}
}

// Step implements node.Handler
func (h *Handler) Step(msg message.Message[Payload], out node.Sink[Payload]) error {
	switch p := msg.Body.Payload.(type) {
	case *Broadcast:
		added, err := h.store.Add(p.Message)
		if err != nil {
			return err
		}

		h.logger.WithFields(logrus.Fields{
			"message": p.Message,
			"new":     added,
		}).Debug("Broadcast")

		return out.Send(msg.Reply(h.ids.Next(), &BroadcastOk{}))
	case *Read:
		values, err := h.store.Values()
		if err != nil {
			return err
		}
		return out.Send(msg.Reply(h.ids.Next(), &ReadOk{Messages: values}))
	case *Topology:
		h.logTopology(p.Topology)
		return out.Send(msg.Reply(h.ids.Next(), &TopologyOk{}))
	case *BroadcastOk, *ReadOk, *TopologyOk:
		return nil
	default:
		return fmt.Errorf("broadcast: unhandled payload %s", msg.Body.Payload.Type())
	}
}

// logTopology reports the neighbours assigned to this node. The topology is
// not used otherwise.
func (h *Handler) logTopology(topology map[string][]string) {
	for id := range topology {
		if !h.roster.Contains(id) {
			h.logger.WithField("node", id).Warn("Topology names a node outside the roster")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"neighbours": topology[h.roster.Self()],
		"peers":      h.roster.Others(),
	}).Debug("Topology")
}

// Store returns the handler's Store.
func (h *Handler) Store() Store {
	return h.store
}

// Close closes the Store.
func (h *Handler) Close() error {
	return h.store.Close()
}
