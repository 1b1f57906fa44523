// Package domain contains the pure types of the strata scene model:
// paths, prim specs, and the sentinel errors shared across the stack.
// It has no dependencies outside the standard library so that adapters
// and surfaces can import it freely.
package domain
