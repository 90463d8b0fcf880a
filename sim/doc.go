// Package sim implements the core of a delay-tolerant-networking,
// packet-level discrete-event simulator: a single-threaded event kernel,
// a time-expanded contact graph with Contact Graph Routing (CGR), and a
// per-node forwarding engine with per-contact FIFO queues and limbo.
//
// The package does not load topology files, parse CLI flags, or render
// output; those concerns live in cmd/ and are expected to construct a
// ContactPlan and a Simulator and drive them through the public API.
package sim
