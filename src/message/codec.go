package message

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Codec decodes lines into Messages whose payload belongs to a closed set of
// variants. The set is fixed when the Codec is built.
type Codec[P Payload] struct {
	variants map[string]func() P
}

// NewCodec registers one constructor per variant. Each constructor must
// return a fresh pointer; its Type() is the tag it is registered under.
func NewCodec[P Payload](variants ...func() P) *Codec[P] {
	c := &Codec[P]{
		variants: make(map[string]func() P, len(variants)),
	}
	for _, v := range variants {
		c.variants[v().Type()] = v
	}
	return c
}

// envelope is the undecoded shape of a line. Pointers distinguish absent
// fields from empty ones.
type envelope struct {
	Src  *string         `json:"src"`
	Dest *string         `json:"dest"`
	Body json.RawMessage `json:"body"`
}

type header struct {
	MsgID     *uint64 `json:"msg_id"`
	InReplyTo *uint64 `json:"in_reply_to"`
	Type      *string `json:"type"`
}

// Decode parses one line. Any failure is a *DecodeError.
func (c *Codec[P]) Decode(line []byte) (Message[P], error) {
	var (
		m   Message[P]
		env envelope
		hdr header
	)

	if err := json.Unmarshal(line, &env); err != nil {
		return m, newDecodeError(line, err)
	}
	if env.Src == nil {
		return m, newDecodeError(line, fmt.Errorf("%w: src", ErrMissingField))
	}
	if env.Dest == nil {
		return m, newDecodeError(line, fmt.Errorf("%w: dest", ErrMissingField))
	}
	if len(env.Body) == 0 || string(env.Body) == "null" {
		return m, newDecodeError(line, fmt.Errorf("%w: body", ErrMissingField))
	}

	if err := json.Unmarshal(env.Body, &hdr); err != nil {
		return m, newDecodeError(line, err)
	}
	if hdr.Type == nil {
		return m, newDecodeError(line, fmt.Errorf("%w: type", ErrMissingField))
	}

	newPayload, ok := c.variants[*hdr.Type]
	if !ok {
		return m, newDecodeError(line, fmt.Errorf("%w: %q", ErrUnknownType, *hdr.Type))
	}

	payload := newPayload()
	if err := json.Unmarshal(env.Body, payload); err != nil {
		return m, newDecodeError(line, err)
	}

	m = Message[P]{
		Src:  *env.Src,
		Dest: *env.Dest,
		Body: Body[P]{
			MsgID:     hdr.MsgID,
			InReplyTo: hdr.InReplyTo,
			Payload:   payload,
		},
	}
	return m, nil
}

// Encode returns the single-line JSON form of m.
func (c *Codec[P]) Encode(m Message[P]) ([]byte, error) {
	return Encode(m)
}

// Has reports whether tag is a registered variant.
func (c *Codec[P]) Has(tag string) bool {
	_, ok := c.variants[tag]
	return ok
}

// New returns a zero value of the variant registered under tag.
func (c *Codec[P]) New(tag string) (P, bool) {
	v, ok := c.variants[tag]
	if !ok {
		var zero P
		return zero, false
	}
	return v(), true
}

// Types returns the registered tags in sorted order.
func (c *Codec[P]) Types() []string {
	res := make([]string, 0, len(c.variants))
	for t := range c.variants {
		res = append(res, t)
	}
	sort.Strings(res)
	return res
}
