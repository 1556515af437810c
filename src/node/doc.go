// Package node implements the runtime every node process is built on.
//
// A Node reads newline-delimited JSON from an input stream and writes replies
// to an output stream. The first line must carry an init message: the Node
// answers it with init_ok, builds its handler from the init roster, and then
// enters the dispatch loop where each line is decoded and passed to the
// handler's Step method.
//
// Lifecycle
//
// Node implements a small state machine (see the state package):
//
//  Initializing --handshake--> Running --EOF or fatal error--> Terminated
//
// There is no recovery. A malformed line, a first message that is not init, a
// handler error, or a read or write failure ends the loop and is returned to
// the caller, which is expected to log it and exit with a non-zero status.
// End of input after the handshake is a clean exit.
//
// Ordering
//
// The loop is single-threaded. Every message a handler sends through its Sink
// is encoded, written as one line and flushed before Send returns, so replies
// to line N always precede the read of line N+1.
package node
