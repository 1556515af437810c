package node

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/mosaicnetworks/maelnode/src/node/state"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Node drives a Handler of type H over a line-delimited stream of messages
// whose payloads are of type P.
type Node[P message.Payload, H Handler[P]] struct {
	state.Manager

	conf    *config.Config
	logger  *logrus.Entry
	codec   *message.Codec[P]
	factory Factory[P, H]

	info     message.Init
	handler  H
	ready    bool
	sink     *lineSink[P]
	received int
}

// NewNode returns a Node that decodes inbound lines with codec and builds its
// handler with factory once the handshake is done.
func NewNode[P message.Payload, H Handler[P]](
	conf *config.Config,
	codec *message.Codec[P],
	factory Factory[P, H],
) *Node[P, H] {
	return &Node[P, H]{
		conf:    conf,
		logger:  conf.Logger(),
		codec:   codec,
		factory: factory,
	}
}

// Run performs the handshake and then dispatches every line of in to the
// handler, writing replies to out. It returns nil at end of input and the
// first fatal error otherwise. Run must be called once.
func (n *Node[P, H]) Run(in io.Reader, out io.Writer) (err error) {
	r := bufio.NewReader(in)
	w := newLineWriter(out)

	n.setState(state.Initializing)

	defer func() {
		if cerr := n.close(); err == nil {
			err = cerr
		}
		n.setState(state.Terminated)

		entry := n.logger.WithFields(n.statsFields())
		if err != nil {
			entry.WithError(err).Error("Terminated")
		} else {
			entry.Info("Terminated")
		}
	}()

	line, err := readLine(r)
	if err == io.EOF {
		return ErrNoInit
	}
	if err != nil {
		return errors.Wrap(err, "init message could not be read")
	}

	if err := n.initialize(line, w); err != nil {
		return err
	}

	n.setState(state.Running)

	for {
		line, err := readLine(r)
		if err == io.EOF {
			n.logger.Debug("End of input")
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "input could not be read")
		}

		if err := n.step(line); err != nil {
			return err
		}
	}
}

func (n *Node[P, H]) initialize(line []byte, w *lineWriter) error {
	info, reply, err := Handshake(line)
	if err != nil {
		return err
	}

	n.logger = n.logger.WithField("this_id", info.NodeID)
	n.logger.WithField("node_ids", info.NodeIDs).Debug("Init")

	handler, err := n.factory(info, n.conf)
	if err != nil {
		return errors.Wrap(err, "node initialization failed")
	}

	n.info = info
	n.handler = handler
	n.ready = true
	n.sink = newLineSink(w, n.codec, info.NodeID, n.logger)

	if err := w.writeLine(reply); err != nil {
		return errors.Wrap(err, "write init_ok")
	}
	n.sink.observe(InitReplyID)

	return nil
}

func (n *Node[P, H]) step(line []byte) error {
	msg, err := n.codec.Decode(line)
	if err != nil {
		return errors.Wrap(err, "input could not be deserialized")
	}
	n.received++

	tag := msg.Body.Payload.Type()

	n.logger.WithFields(logrus.Fields{
		"src":    msg.Src,
		"type":   tag,
		"msg_id": optionalID(msg.Body.MsgID),
	}).Debug("Step")

	n.sink.handling(&msg)
	defer n.sink.handling(nil)

	if err := n.handler.Step(msg, n.sink); err != nil {
		return errors.Wrapf(err, "step %s failed", tag)
	}

	return nil
}

func (n *Node[P, H]) close() error {
	if !n.ready {
		return nil
	}
	if c, ok := any(n.handler).(io.Closer); ok {
		if err := c.Close(); err != nil {
			return errors.Wrap(err, "close handler")
		}
	}
	return nil
}

func (n *Node[P, H]) setState(s state.State) {
	n.logger.WithField("state", s.String()).Debug("State")
	n.SetState(s)
}

// NodeID returns the id assigned by the handshake, or "" before it.
func (n *Node[P, H]) NodeID() string {
	return n.info.NodeID
}

// NodeIDs returns the roster received in the handshake.
func (n *Node[P, H]) NodeIDs() []string {
	return n.info.NodeIDs
}

// Handler returns the handler built by the factory. ok is false before the
// handshake.
func (n *Node[P, H]) Handler() (handler H, ok bool) {
	return n.handler, n.ready
}

// GetStats returns counters describing the run so far.
func (n *Node[P, H]) GetStats() map[string]string {
	sent := 0
	if n.sink != nil {
		sent = n.sink.sent
	}

	return map[string]string{
		"node_id":  n.info.NodeID,
		"state":    n.GetState().String(),
		"received": strconv.Itoa(n.received),
		"sent":     strconv.Itoa(sent),
	}
}

func (n *Node[P, H]) statsFields() logrus.Fields {
	fields := logrus.Fields{}
	for k, v := range n.GetStats() {
		fields[k] = v
	}
	return fields
}

// readLine returns the next line without its terminator. A last line missing
// its newline is still returned; io.EOF comes on the following call.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err == io.EOF {
		if len(bytes.TrimSpace(line)) == 0 {
			return nil, io.EOF
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

func optionalID(id *uint64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
