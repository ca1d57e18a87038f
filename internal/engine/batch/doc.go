// Package batch walks a collection in fixed-size batches, reporting progress
// after each one. The export command uses it to stream large result sets
// without building the whole encoded output in memory.
package batch
