// Package ui implements the minimal debug overlay: toggles and sliders for
// the rendering parameters a human operator wants to hand-tune while the
// simulation runs, grounded on the teacher's cmd/potentialpreview SliderBar
// layout.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ribossome/ribossome/config"
)

const panelWidth = 260

// Overlay is a left-docked panel of toggles/sliders over the rendering
// parameter block. It does not touch simulation parameters (spec §1:
// camera/UI controls are an external collaborator, out of the compute
// pipeline's scope) — only the presentation fields of config.Params.
type Overlay struct {
	Visible bool
}

// NewOverlay creates a hidden-by-default debug overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Toggle flips overlay visibility, bound to a hotkey by the caller.
func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Draw renders the panel and applies any edits directly onto p. Must be
// called between rl.BeginDrawing/EndDrawing, after the scene composite.
func (o *Overlay) Draw(p *config.Params) {
	if !o.Visible {
		return
	}

	x := float32(10)
	y := float32(10)
	rl.DrawRectangle(int32(x)-5, int32(y)-5, panelWidth, 330, rl.Color{R: 20, G: 20, B: 20, A: 200})
	rl.DrawText("Debug Overlay", int32(x), int32(y), 18, rl.White)
	y += 26

	p.ShowAlpha = checkbox(x, &y, "Show alpha", p.ShowAlpha)
	p.ShowBeta = checkbox(x, &y, "Show beta", p.ShowBeta)
	p.ShowGamma = checkbox(x, &y, "Show gamma", p.ShowGamma)
	p.GammaHidden = checkbox(x, &y, "Hide gamma tint", p.GammaHidden)
	p.TrailShow = checkbox(x, &y, "Show trail", p.TrailShow)
	p.SlopeLighting = checkbox(x, &y, "Slope lighting", p.SlopeLighting)
	p.SlopeDebug = checkbox(x, &y, "Slope debug view", p.SlopeDebug)
	p.GammaDebug = checkbox(x, &y, "Gamma debug view", p.GammaDebug)

	p.ChannelGamma = slider(x, &y, "Channel gamma", p.ChannelGamma, 0.2, 4.0)
	p.TrailOpacity = slider(x, &y, "Trail opacity", p.TrailOpacity, 0.0, 1.0)
	p.SlopeLightStrength = slider(x, &y, "Slope light strength", p.SlopeLightStrength, 0.0, 2.0)
	p.CameraZoom = slider(x, &y, "Camera zoom", p.CameraZoom, 0.1, 8.0)
}

func checkbox(x float32, y *float32, label string, v bool) bool {
	r := rl.Rectangle{X: x, Y: *y, Width: 18, Height: 18}
	next := gui.CheckBox(r, label, v)
	*y += 26
	return next
}

func slider(x float32, y *float32, label string, v float64, min, max float64) float64 {
	rl.DrawText(fmt.Sprintf("%s: %.2f", label, v), int32(x), int32(*y), 14, rl.LightGray)
	*y += 16
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 30, Height: 18},
		"", "",
		float32(v), float32(min), float32(max),
	)
	*y += 26
	return float64(next)
}
