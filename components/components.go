// Package components defines ECS components for particle entities.
package components

// Position represents a particle's surface-local position.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's velocity in surface units per tick.
type Velocity struct {
	X, Y float64
}

// Glow holds the appearance fixed at spawn.
type Glow struct {
	Size  float64 // disc radius
	Alpha float64 // paint opacity
}
