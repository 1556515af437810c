package node

import "github.com/pkg/errors"

var (
	// ErrNoInit is returned when the input ends before the first line.
	ErrNoInit = errors.New("node: no input message")

	// ErrNotInit is returned when the first line is not an init message.
	ErrNotInit = errors.New("node: first message should be init")

	// ErrIDRegression is returned when a message is sent with a msg_id that
	// does not strictly increase over the previous one.
	ErrIDRegression = errors.New("node: msg_id did not increase")

	// ErrMisaddressed is returned when a message is not sent from the local
	// node, or when a reply is not addressed to the sender of the request.
	ErrMisaddressed = errors.New("node: misaddressed message")

	// ErrReplyToReply is returned when a handler answers a message that is
	// itself a reply.
	ErrReplyToReply = errors.New("node: cannot reply to a reply")
)
