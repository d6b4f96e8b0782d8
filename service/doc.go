// Package service orchestrates the heap tree, node memory, the output
// outbox and sequencing behind one write entry point.
//
// It provides the API used by the gRPC adapter and the command line,
// decoupled from the transports themselves.
package service
