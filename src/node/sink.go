package node

import (
	"bufio"
	"io"

	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// lineWriter writes complete lines and flushes after each one.
type lineWriter struct {
	w *bufio.Writer
}

func newLineWriter(out io.Writer) *lineWriter {
	return &lineWriter{w: bufio.NewWriter(out)}
}

func (lw *lineWriter) writeLine(line []byte) error {
	if _, err := lw.w.Write(line); err != nil {
		return err
	}
	if err := lw.w.WriteByte('\n'); err != nil {
		return err
	}
	return lw.w.Flush()
}

// lineSink is the Sink handed to handlers. Before writing, it checks that the
// message comes from the local node and that msg_ids keep increasing. While a
// reply is being handled, no message carrying in_reply_to may be sent; other
// replies must go back to the sender of the request they answer.
type lineSink[P message.Payload] struct {
	out     *lineWriter
	codec   *message.Codec[P]
	self    string
	lastID  *uint64
	request *message.Message[P]
	sent    int
	logger  *logrus.Entry
}

func newLineSink[P message.Payload](
	out *lineWriter,
	codec *message.Codec[P],
	self string,
	logger *logrus.Entry,
) *lineSink[P] {
	return &lineSink[P]{
		out:    out,
		codec:  codec,
		self:   self,
		logger: logger,
	}
}

// observe records an id already used by the runtime itself.
func (s *lineSink[P]) observe(id uint64) {
	s.lastID = message.ID(id)
}

// handling sets the request whose replies are about to be sent.
func (s *lineSink[P]) handling(req *message.Message[P]) {
	s.request = req
}

// Send implements the Sink interface.
func (s *lineSink[P]) Send(msg message.Message[P]) error {
	if err := s.check(msg); err != nil {
		return err
	}

	line, err := s.codec.Encode(msg)
	if err != nil {
		return errors.Wrapf(err, "serialize %s", msg.Body.Payload.Type())
	}

	if err := s.out.writeLine(line); err != nil {
		return errors.Wrap(err, "write output")
	}

	if msg.Body.MsgID != nil {
		s.observe(*msg.Body.MsgID)
	}
	s.sent++

	s.logger.WithFields(logrus.Fields{
		"dest": msg.Dest,
		"type": msg.Body.Payload.Type(),
	}).Debug("Send")

	return nil
}

func (s *lineSink[P]) check(msg message.Message[P]) error {
	if msg.Src != s.self {
		return errors.Wrapf(ErrMisaddressed, "src is %q, local node is %q", msg.Src, s.self)
	}

	if msg.Body.MsgID != nil && s.lastID != nil && *msg.Body.MsgID <= *s.lastID {
		return errors.Wrapf(ErrIDRegression, "msg_id %d after %d", *msg.Body.MsgID, *s.lastID)
	}

	req := s.request
	if req == nil || msg.Body.InReplyTo == nil {
		return nil
	}

	// nothing answers a reply, whether or not it carries a msg_id
	if req.IsReply() {
		return errors.Wrapf(ErrReplyToReply, "%s is a reply", req.Body.Payload.Type())
	}

	if req.Body.MsgID == nil || *msg.Body.InReplyTo != *req.Body.MsgID {
		return nil
	}
	if msg.Dest != req.Src {
		return errors.Wrapf(ErrMisaddressed, "reply to %q sent to %q", req.Src, msg.Dest)
	}

	return nil
}
