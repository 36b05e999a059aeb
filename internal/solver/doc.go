// Package solver owns the driver glue between input lines and answers.
//
// Ownership boundary:
// - solver metadata and execution interface
// - version-sum and evaluation solvers
// - solver registry primitives
// - input line reading
package solver
