package broadcast

// Store is an interface for the backends holding broadcast values.
type Store interface {
	// Add records a value. It returns false if the value was already known,
	// in which case nothing changes.
	Add(value int) (bool, error)
	// Has reports whether a value was recorded.
	Has(value int) bool
	// Values returns every recorded value in the order it was first added.
	Values() ([]int, error)
	// Len returns the number of recorded values.
	Len() int
	// Close releases the underlying database, if any.
	Close() error
	// StorePath returns the filepath of the underlying database.
	StorePath() string
}
