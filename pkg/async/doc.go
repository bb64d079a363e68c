// Package async provides a minimal future abstraction for running
// independent I/O-bound reads concurrently, such as issuing the plan
// lookup and the usage counts of a limit check in parallel.
package async
