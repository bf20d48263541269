//go:build !ebiten

package ui

import "planet-synth/internal/core"

// Source is what the HUD reads and edits.
type Source interface {
	core.ParameterControlsProvider
	core.FloatParameterSetter
	Parameters() core.ParameterSnapshot
	Title() string
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Source, int) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
