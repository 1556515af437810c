package peers

// Peer is one node of the cluster.
type Peer struct {
	// ID is the harness-assigned node id, e.g. "n1".
	ID string
	// Index is the position of the node in the init roster.
	Index int
}

// NewPeer ...
func NewPeer(id string, index int) *Peer {
	return &Peer{
		ID:    id,
		Index: index,
	}
}

func (p *Peer) String() string {
	return p.ID
}
