// Package network holds the expanded network produced by the builder: a
// thread-safe, in-memory store of nodes and edges kept in insertion order,
// plus writers that render it as HCL or plain text.
package network
