package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a loadable scene addressed by its build index.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Enterable 是一个可选接口，场景成为活动场景时调用 OnEnter
type Enterable interface {
	OnEnter()
}
