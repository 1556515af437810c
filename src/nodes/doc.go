// Package nodes groups the reference handlers built on the node runtime.
//
// Each sub-package defines a sealed Payload interface listing its variants, a
// NewCodec constructor registering them, and a Handler with a factory New
// suitable for node.NewNode. None of them talks to other nodes: they only
// answer the client that sent the request.
package nodes
