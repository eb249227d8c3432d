package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ribossome/ribossome/config"
)

// Composite is the third rendering composition kernel of spec §4.8: it
// blends the agent layer on top of the environment layer using a
// configurable mode (comp/add/subtract/multiply) and an agent tint, onto
// whatever render target is currently active (the screen in the
// interactive frontend, or an offscreen target for headless snapshotting).
// Grounded on the teacher's `renderer/resource_gpu.go` DrawTexturePro
// flip-and-blend pattern, generalized from a single texture draw to a
// two-layer blend-mode composite.
func Composite(env, agents rl.RenderTexture2D, p *config.Params) {
	w := float32(env.Texture.Width)
	h := float32(env.Texture.Height)

	envSrc := rl.Rectangle{X: 0, Y: float32(env.Texture.Height), Width: w, Height: -h}
	dst := rl.Rectangle{X: 0, Y: 0, Width: w, Height: h}
	rl.DrawTexturePro(env.Texture, envSrc, dst, rl.Vector2{}, 0, rl.White)

	tint := rl.Color{
		R: uint8(clamp01(p.AgentTint[0]) * 255),
		G: uint8(clamp01(p.AgentTint[1]) * 255),
		B: uint8(clamp01(p.AgentTint[2]) * 255),
		A: 255,
	}

	blendMode := blendModeFor(p.AgentBlendMode)
	rl.BeginBlendMode(blendMode)
	agentSrc := rl.Rectangle{X: 0, Y: float32(agents.Texture.Height), Width: w, Height: -h}
	rl.DrawTexturePro(agents.Texture, agentSrc, dst, rl.Vector2{}, 0, tint)
	rl.EndBlendMode()
}

// blendModeFor maps the parameter block's agent_blend_mode string (spec
// §6: "comp | add | subtract | multiply") to a raylib blend mode.
func blendModeFor(mode string) rl.BlendMode {
	switch mode {
	case "add":
		return rl.BlendAdditive
	case "subtract":
		return rl.BlendSubtractColors
	case "multiply":
		return rl.BlendMultiplied
	default: // "comp"
		return rl.BlendAlpha
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
