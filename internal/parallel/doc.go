// Package parallel decodes batches of todo.txt lines concurrently.
//
// It provides:
//   - WorkerPool: Bounded concurrency worker pool, one job per line
//   - Decode: Fan-out over a slice of lines with results kept in input order
//
// Decoding a line touches no shared state, so lines need no coordination
// beyond collecting their results.
package parallel
