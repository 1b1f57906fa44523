// Package ports defines the narrow contracts between the strata core and
// its collaborators: the host undo engine's command shape and the layer
// persistence stores. Adapters implement these interfaces; the reusable
// contract test keeps implementations honest.
package ports
