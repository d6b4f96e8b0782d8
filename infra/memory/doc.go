// Package memory provides bounded object pools used to hand out and
// reclaim tree node storage. A pool with a limit turns runaway growth into
// an ErrExhausted error the caller can surface.
package memory
