// Package sim provides the queueing simulation core for queue-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - arrival.go, service.go: Poisson arrivals and exponential service draws
//   - trace.go: a fixed (arrivals, services) pair that simulators evaluate
//   - single_server.go: one server advancing over the trace
//   - multi_server.go: least-loaded assignment over a pool of servers
//   - search.go: empirical minimum-server search
//
// # Randomness
//
// Nothing in this package reads global randomness. Callers pass a
// PartitionedRNG (rng.go), which hands out one *rand.Rand per subsystem
// so that arrival and service streams stay independent of each other.
//
// # Results
//
// Simulators return a *Result. Result.Metrics lists the named metrics
// (requests_served, busy_time, idle_time, total_queue_time,
// avg_queue_time, avg_queue_length, last_departure) in report order.
// Multi-server runs report busy and idle time per server under
// busy_time_per_server and idle_time_per_server.
//
// Errors are sentinel values (errors.go) wrapped with context; use
// errors.Is to classify them.
package sim
