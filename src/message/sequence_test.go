package message

import "testing"

func TestSequenceStrictlyIncreasing(t *testing.T) {
	s := NewSequence(1)

	if s.Peek() != 1 {
		t.Fatalf("first id should be 1, not %d", s.Peek())
	}

	last := s.Next()
	for i := 0; i < 100; i++ {
		id := s.Next()
		if id <= last {
			t.Fatalf("id %d does not follow %d", id, last)
		}
		last = id
	}

	if last != 101 {
		t.Fatalf("last id should be 101, not %d", last)
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	a := NewSequence(0)
	b := NewSequence(0)

	a.Next()
	a.Next()

	if b.Next() != 0 {
		t.Fatal("sequences share state")
	}
}
