package peers

import "fmt"

// Roster is the ordered, immutable set of nodes taking part in a run, seen
// from one of them.
type Roster struct {
	Peers []*Peer
	ByID  map[string]*Peer

	self string
}

// NewRoster creates a Roster for node self from the init node_ids. It fails
// if self is not listed or if an id appears twice.
func NewRoster(self string, ids []string) (*Roster, error) {
	roster := &Roster{
		Peers: make([]*Peer, 0, len(ids)),
		ByID:  make(map[string]*Peer, len(ids)),
		self:  self,
	}

	for i, id := range ids {
		if _, ok := roster.ByID[id]; ok {
			return nil, fmt.Errorf("peers: duplicate node id %q", id)
		}
		peer := NewPeer(id, i)
		roster.Peers = append(roster.Peers, peer)
		roster.ByID[id] = peer
	}

	if _, ok := roster.ByID[self]; !ok {
		return nil, fmt.Errorf("peers: node %q is not in the roster %v", self, ids)
	}

	return roster, nil
}

// Self returns the local node id.
func (r *Roster) Self() string {
	return r.self
}

// Len returns the number of nodes, including the local one.
func (r *Roster) Len() int {
	return len(r.Peers)
}

// IDs returns the node ids in roster order.
func (r *Roster) IDs() []string {
	res := make([]string, len(r.Peers))
	for i, p := range r.Peers {
		res[i] = p.ID
	}
	return res
}

// Contains reports whether id is part of the roster.
func (r *Roster) Contains(id string) bool {
	_, ok := r.ByID[id]
	return ok
}

// Index returns the roster position of id, or -1.
func (r *Roster) Index(id string) int {
	if p, ok := r.ByID[id]; ok {
		return p.Index
	}
	return -1
}

// Others returns every node id except the local one, in roster order.
func (r *Roster) Others() []string {
	res := make([]string, 0, len(r.Peers))
	for _, p := range r.Peers {
		if p.ID != r.self {
			res = append(res, p.ID)
		}
	}
	return res
}
