package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/events"
)

// handleKeys processes keyboard shortcuts in the raylib window.
func handleKeys(bus *events.Bus) {
	// Fullscreen toggle; the size change arrives as a resize next frame
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Respawn the field at the current size
	if rl.IsKeyPressed(rl.KeyR) {
		bus.EmitResize()
	}
}
