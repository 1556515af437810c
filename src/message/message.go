package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilPayload is returned when encoding a Body without a payload.
var ErrNilPayload = errors.New("message: nil payload")

// Payload is the variant part of a message Body. Type returns the
// discriminant written to the "type" field. Payload structs must not declare
// "type", "msg_id" or "in_reply_to" fields of their own.
type Payload interface {
	Type() string
}

// Message is one unit exchanged with the harness. A reply is always a new
// Message, never a modified copy of the request.
type Message[P Payload] struct {
	Src  string  `json:"src"`
	Dest string  `json:"dest"`
	Body Body[P] `json:"body"`
}

// Body carries the correlation ids and the payload.
type Body[P Payload] struct {
	// MsgID is assigned by the sender and strictly increases per sender.
	MsgID *uint64
	// InReplyTo is the MsgID of the request this message answers.
	InReplyTo *uint64
	Payload   P
}

// ID returns a pointer to v, for building Bodies inline.
func ID(v uint64) *uint64 {
	return &v
}

// IsReply reports whether the message answers another one. Replies are
// terminal: nothing ever replies to them.
func (m Message[P]) IsReply() bool {
	return m.Body.InReplyTo != nil
}

// Reply builds the answer to m: source and destination are swapped,
// in_reply_to is m's msg_id and msg_id is id.
func (m Message[P]) Reply(id uint64, payload P) Message[P] {
	var inReplyTo *uint64
	if m.Body.MsgID != nil {
		inReplyTo = ID(*m.Body.MsgID)
	}

	return Message[P]{
		Src:  m.Dest,
		Dest: m.Src,
		Body: Body[P]{
			MsgID:     ID(id),
			InReplyTo: inReplyTo,
			Payload:   payload,
		},
	}
}

// MarshalJSON writes the Body as one object: msg_id, in_reply_to, type, then
// the payload fields.
func (b Body[P]) MarshalJSON() ([]byte, error) {
	if any(b.Payload) == nil {
		return nil, ErrNilPayload
	}

	tag, err := json.Marshal(b.Payload.Type())
	if err != nil {
		return nil, err
	}

	fields, err := json.Marshal(b.Payload)
	if err != nil {
		return nil, err
	}

	fields = bytes.TrimSpace(fields)
	if len(fields) < 2 || fields[0] != '{' || fields[len(fields)-1] != '}' {
		return nil, fmt.Errorf("message: payload %s does not encode as an object", tag)
	}
	inner := bytes.TrimSpace(fields[1 : len(fields)-1])

	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	if b.MsgID != nil {
		fmt.Fprintf(buf, `"msg_id":%d,`, *b.MsgID)
	}
	if b.InReplyTo != nil {
		fmt.Fprintf(buf, `"in_reply_to":%d,`, *b.InReplyTo)
	}
	buf.WriteString(`"type":`)
	buf.Write(tag)
	if len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Encode returns the single-line JSON form of m, without the trailing
// newline.
func Encode[P Payload](m Message[P]) ([]byte, error) {
	return json.Marshal(m)
}
