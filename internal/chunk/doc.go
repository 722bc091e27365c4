// Package chunk provides cooperative, chunk-bounded execution of long
// per-sample loops.
//
// Work is modeled as a [Stepper]: a step function that processes up to n
// units (samples, frames or codec blocks) and reports how much work remains.
// The [Executor] drives a Stepper in fixed-size chunks, yields to the Go
// scheduler between chunks, reports progress and honors cancellation only at
// chunk boundaries. Chunking is a scheduling concern only: the result of a
// Stepper never depends on the chunk size used to drive it.
package chunk
