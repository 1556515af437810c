package uniqueids

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mosaicnetworks/maelnode/src/common"
	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/mosaicnetworks/maelnode/src/node"
)

type recordingSink struct {
	sent []message.Message[Payload]
}

func (s *recordingSink) Send(msg message.Message[Payload]) error {
	s.sent = append(s.sent, msg)
	return nil
}

func newTestHandler(t *testing.T, self string) *Handler {
	h, err := New(
		message.Init{NodeID: self, NodeIDs: []string{"n1", "n2"}},
		config.NewTestConfig(t, common.TestLogLevel),
	)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func generate(msgID uint64) message.Message[Payload] {
	return message.Message[Payload]{
		Src:  "c1",
		Dest: "n1",
		Body: message.Body[Payload]{MsgID: message.ID(msgID), Payload: &Generate{}},
	}
}

func TestGenerateDistinctIDs(t *testing.T) {
	h := newTestHandler(t, "n1")
	sink := &recordingSink{}

	for i := uint64(1); i <= 100; i++ {
		if err := h.Step(generate(i), sink); err != nil {
			t.Fatal(err)
		}
	}

	seen := make(map[string]bool)
	for _, reply := range sink.sent {
		ok := reply.Body.Payload.(*GenerateOk)
		if seen[ok.ID] {
			t.Fatalf("id %s generated twice", ok.ID)
		}
		seen[ok.ID] = true
	}

	if h.Generated() != 100 || len(seen) != 100 {
		t.Fatalf("expected 100 ids, got %d (%d distinct)", h.Generated(), len(seen))
	}
}

func TestIDsDependOnNode(t *testing.T) {
	a := newTestHandler(t, "n1")
	b := newTestHandler(t, "n2")
	sinkA := &recordingSink{}
	sinkB := &recordingSink{}

	if err := a.Step(generate(1), sinkA); err != nil {
		t.Fatal(err)
	}
	if err := b.Step(generate(1), sinkB); err != nil {
		t.Fatal(err)
	}

	idA := sinkA.sent[0].Body.Payload.(*GenerateOk).ID
	idB := sinkB.sent[0].Body.Payload.(*GenerateOk).ID

	if idA == idB {
		t.Fatalf("two nodes generated the same id %s", idA)
	}
	if idA != "n1-1" || idB != "n2-1" {
		t.Fatalf("unexpected ids %s, %s", idA, idB)
	}
}

func TestUnknownSelfIsRejected(t *testing.T) {
	_, err := New(
		message.Init{NodeID: "n3", NodeIDs: []string{"n1", "n2"}},
		config.NewTestConfig(t, common.TestLogLevel),
	)
	if err == nil {
		t.Fatal("a node outside its roster should not be built")
	}
}

func TestEveryVariantIsHandled(t *testing.T) {
	codec := NewCodec()

	for _, tag := range codec.Types() {
		h := newTestHandler(t, "n1")
		sink := &recordingSink{}

		payload, _ := codec.New(tag)
		msg := message.Message[Payload]{
			Src:  "c1",
			Dest: "n1",
			Body: message.Body[Payload]{MsgID: message.ID(1), Payload: payload},
		}

		if err := h.Step(msg, sink); err != nil {
			t.Fatalf("%s: %v", tag, err)
		}

		if strings.HasSuffix(tag, "_ok") && (len(sink.sent) != 0 || h.Generated() != 0) {
			t.Fatalf("%s should be a no-op", tag)
		}
	}
}

func TestUniqueIDsNode(t *testing.T) {
	conf := config.NewTestConfig(t, common.TestLogLevel)
	n := node.NewNode[Payload, *Handler](conf, NewCodec(), New)

	in := strings.NewReader(strings.Join([]string{
		`{"src":"c1","dest":"n1","body":{"msg_id":1,"type":"init","node_id":"n1","node_ids":["n1","n2"]}}`,
		`{"src":"c1","dest":"n1","body":{"msg_id":2,"type":"generate"}}`,
		`{"src":"c1","dest":"n1","body":{"msg_id":3,"type":"generate"}}`,
	}, "\n"))
	out := new(bytes.Buffer)

	if err := n.Run(in, out); err != nil {
		t.Fatal(err)
	}

	ids := []string{}
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var m struct {
			Body struct {
				Type string `json:"type"`
				ID   string `json:"id"`
			} `json:"body"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatal(err)
		}
		if m.Body.Type == "generate_ok" {
			ids = append(ids, m.Body.ID)
		}
	}

	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct ids, got %v", ids)
	}
}
