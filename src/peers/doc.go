// Package peers holds the cluster roster a node learns from the init
// handshake.
//
// The harness names every node with an opaque string and sends each node the
// full list once, in the same order to every node. The roster is fixed for
// the lifetime of the process: nodes never join or leave during a run.
package peers
