package broadcast

// InmemStore keeps values in memory. It is the default Store.
type InmemStore struct {
	values []int
	seen   map[int]struct{}
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		values: []int{},
		seen:   make(map[int]struct{}),
	}
}

// Add implements the Store interface.
func (s *InmemStore) Add(value int) (bool, error) {
	if s.Has(value) {
		return false, nil
	}
	s.seen[value] = struct{}{}
	s.values = append(s.values, value)
	return true, nil
}

// Has implements the Store interface.
func (s *InmemStore) Has(value int) bool {
	_, ok := s.seen[value]
	return ok
}

// Values implements the Store interface. The result is a copy.
func (s *InmemStore) Values() ([]int, error) {
	res := make([]int, len(s.values))
	copy(res, s.values)
	return res, nil
}

// Len implements the Store interface.
func (s *InmemStore) Len() int {
	return len(s.values)
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}
