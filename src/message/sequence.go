package message

// Sequence hands out message ids. It is owned by a single handler and is not
// safe for concurrent use.
type Sequence struct {
	next uint64
}

// NewSequence returns a Sequence whose first id is seed.
func NewSequence(seed uint64) *Sequence {
	return &Sequence{next: seed}
}

// Next returns the next id. Ids never repeat or go backwards.
func (s *Sequence) Next() uint64 {
	id := s.next
	s.next++
	return id
}

// Peek returns the id Next would return, without consuming it.
func (s *Sequence) Peek() uint64 {
	return s.next
}
