package state

import "testing"

func TestManager(t *testing.T) {
	var m Manager

	if m.GetState() != Initializing {
		t.Fatalf("zero state should be Initializing, not %s", m.GetState())
	}

	m.SetState(Running)
	if m.GetState() != Running {
		t.Fatalf("state should be Running, not %s", m.GetState())
	}

	m.SetState(Terminated)
	if m.GetState().String() != "Terminated" {
		t.Fatalf("unexpected state %s", m.GetState())
	}

	if State(42).String() != "Unknown" {
		t.Fatal("out of range states should be Unknown")
	}
}
