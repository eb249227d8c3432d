package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/camera"
)

// AgentLayer is the second rendering composition kernel of spec §4.8: each
// live, on-screen agent rasterises a capsule-chain of its parts, organ
// glyphs (asterisk on mouth, diamond on displacer, filled disc on
// condenser with flash on discharge), propeller jet particles, and sensor
// clouds, into its own RGBA render target. Grounded on the teacher's
// `renderer/particles.go` CPU-draw-call style (plain rl.DrawX calls keyed
// off a type switch), generalized from effect particles to body parts.
type AgentLayer struct {
	target      rl.RenderTexture2D
	screenW, screenH int32
	initialized bool
}

// NewAgentLayer creates an agent layer sized for screenW x screenH output.
func NewAgentLayer(screenW, screenH int32) *AgentLayer {
	return &AgentLayer{screenW: screenW, screenH: screenH}
}

func (a *AgentLayer) init() {
	if a.initialized {
		return
	}
	a.target = rl.LoadRenderTexture(a.screenW, a.screenH)
	a.initialized = true
}

// Resize reallocates the output render target for a new screen size.
func (a *AgentLayer) Resize(w, h int32) {
	if w == a.screenW && h == a.screenH {
		return
	}
	a.screenW, a.screenH = w, h
	if a.initialized {
		rl.UnloadRenderTexture(a.target)
		a.target = rl.LoadRenderTexture(w, h)
	}
}

// Draw rasterises every live, camera-visible agent in agents into a fresh
// RGBA layer and returns it. cam projects world coordinates to screen
// coordinates; the agent pass reuses the exact per-part world positions
// and amplification factors computed by agent.ComputePhysics the same
// tick (spec §4.8's rationale for keeping rendering inside the compute
// graph).
func (a *AgentLayer) Draw(agents []agent.Record, cam *camera.Camera) rl.RenderTexture2D {
	a.init()

	rl.BeginTextureMode(a.target)
	rl.ClearBackground(rl.Blank)

	for i := range agents {
		rec := &agents[i]
		if rec.Alive == 0 || rec.BodyCount == 0 {
			continue
		}
		sx, sy := cam.WorldToScreen(rec.PosX, rec.PosY)
		if !cam.IsVisible(rec.PosX, rec.PosY, 80) {
			continue
		}
		drawAgent(rec, cam, sx, sy)
	}

	rl.EndTextureMode()
	return a.target
}

func drawAgent(rec *agent.Record, cam *camera.Camera, sx, sy float32) {
	cr, cg, cb := agent.IdentityColor(rec)
	bodyColor := rl.Color{R: uint8(cr * 255), G: uint8(cg * 255), B: uint8(cb * 255), A: 230}

	n := int(rec.BodyCount)
	zoom := cam.Zoom

	// Capsule chain: a line per consecutive part pair, a circle per part.
	prevSX, prevSY := sx, sy
	haveWorldPrev := true
	_ = haveWorldPrev
	for i := 0; i < n; i++ {
		wx, wy := agent.WorldPart(rec, i)
		px, py := cam.WorldToScreen(wx, wy)
		part := rec.Body[i]
		radius := part.Size * zoom
		if radius < 1 {
			radius = 1
		}

		if i > 0 {
			rl.DrawLineEx(rl.Vector2{X: prevSX, Y: prevSY}, rl.Vector2{X: px, Y: py}, radius*1.2, bodyColor)
		}
		rl.DrawCircleV(rl.Vector2{X: px, Y: py}, radius, bodyColor)

		drawOrganGlyph(part, px, py, radius)

		prevSX, prevSY = px, py
	}

	drawPropellerJets(rec, cam)
	drawSensorClouds(rec, cam)
}

// drawOrganGlyph draws the role-specific marker for one body part: an
// asterisk on mouth, a diamond on displacer, a filled disc on condenser
// (flashing white while discharging, per spec §4.8).
func drawOrganGlyph(part agent.BodyPart, px, py, radius float32) {
	kind := part.Kind()
	props := agent.Props(kind)
	glyphColor := rl.White

	switch {
	case props.IsMouth:
		r := radius * 0.6
		rl.DrawLineEx(rl.Vector2{X: px - r, Y: py}, rl.Vector2{X: px + r, Y: py}, 1.5, glyphColor)
		rl.DrawLineEx(rl.Vector2{X: px, Y: py - r}, rl.Vector2{X: px, Y: py + r}, 1.5, glyphColor)
		rl.DrawLineEx(rl.Vector2{X: px - r*0.7, Y: py - r*0.7}, rl.Vector2{X: px + r*0.7, Y: py + r*0.7}, 1.5, glyphColor)
		rl.DrawLineEx(rl.Vector2{X: px - r*0.7, Y: py + r*0.7}, rl.Vector2{X: px + r*0.7, Y: py - r*0.7}, 1.5, glyphColor)
	case props.IsDisplacer:
		r := radius * 0.7
		rl.DrawLineEx(rl.Vector2{X: px, Y: py - r}, rl.Vector2{X: px + r, Y: py}, 1.5, glyphColor)
		rl.DrawLineEx(rl.Vector2{X: px + r, Y: py}, rl.Vector2{X: px, Y: py + r}, 1.5, glyphColor)
		rl.DrawLineEx(rl.Vector2{X: px, Y: py + r}, rl.Vector2{X: px - r, Y: py}, 1.5, glyphColor)
		rl.DrawLineEx(rl.Vector2{X: px - r, Y: py}, rl.Vector2{X: px, Y: py - r}, 1.5, glyphColor)
	case props.IsCondenser:
		discharging := part.Scratch2 > 0
		c := glyphColor
		if discharging {
			c = rl.Color{R: 255, G: 255, B: 255, A: 255}
		} else {
			c = rl.Color{R: 200, G: 200, B: 255, A: 180}
		}
		rl.DrawCircleV(rl.Vector2{X: px, Y: py}, radius*0.45, c)
	}
}

// drawPropellerJets draws a short particle streak behind every active
// propeller part, scaled by its amplification factor.
func drawPropellerJets(rec *agent.Record, cam *camera.Camera) {
	n := int(rec.BodyCount)
	for i := 0; i < n; i++ {
		part := rec.Body[i]
		if !agent.Props(part.Kind()).IsPropeller {
			continue
		}
		amp := agent.Amplification(rec, i)
		if amp <= 0 {
			continue
		}
		wx, wy := agent.WorldPart(rec, i)
		sx, sy := cam.WorldToScreen(wx, wy)
		jetColor := rl.Color{R: 120, G: 200, B: 255, A: uint8(160 * amp)}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, (2 + 4*amp) * cam.Zoom, jetColor)
	}
}

// drawSensorClouds draws a faint disc around each active sensor part
// showing its sample-disk radius, clamped to a small on-screen size.
func drawSensorClouds(rec *agent.Record, cam *camera.Camera) {
	n := int(rec.BodyCount)
	for i := 0; i < n; i++ {
		part := rec.Body[i]
		props := agent.Props(part.Kind())
		if !(props.IsAlphaSensor || props.IsBetaSensor || props.IsEnergySensor) {
			continue
		}
		wx, wy := agent.WorldPart(rec, i)
		sx, sy := cam.WorldToScreen(wx, wy)
		radius := 100 * cam.Zoom
		cloudColor := rl.Color{R: 255, G: 255, B: 255, A: 18}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, cloudColor)
	}
}

// Unload releases GPU resources.
func (a *AgentLayer) Unload() {
	if !a.initialized {
		return
	}
	rl.UnloadRenderTexture(a.target)
	a.initialized = false
}
