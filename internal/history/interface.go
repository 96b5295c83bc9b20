package history

// Store is an append-only log of predictions.
type Store interface {
	Add(record *Record) error
	// List returns the newest records first. A non-positive limit returns all.
	List(limit int) ([]*Record, error)
	Count() (int, error)
}
