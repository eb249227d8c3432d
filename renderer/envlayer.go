// Package renderer implements the rendering composition kernels of spec
// §4.8: a clear-visual pass that rasterises the environment grids into an
// RGBA layer, an agent pass that rasterises live agents into a second RGBA
// layer (see agentlayer.go), and a composite pass that blends the two
// (composite.go). These stay part of the core module because they share
// buffers with the simulation — the agent layer reuses the exact per-part
// world positions and amplification factors the physics kernel computed
// the same tick (spec §4.8's rationale for not cleanly excising rendering).
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
)

// EnvLayer is the "clear_visual" kernel: a fragment shader that blends a
// per-channel tint/gamma of alpha/beta/gamma, a slope-lit shading term, and
// the trail overlay into one RGBA image. Grounded on the teacher's
// `renderer/resource_fog.go` shader-plus-readback-texture shape; unlike the
// teacher's wrap-toroidal sampling it uses clamped texture wrap, matching
// the grid's own clamped-at-edge sampling policy (spec §3.1).
type EnvLayer struct {
	shader rl.Shader

	envTex   rl.Texture2D // R=alpha G=beta B=gamma
	slopeTex rl.Texture2D // R=slopeX G=slopeY, biased into [0,1]
	trailTex rl.Texture2D // RGB=trail

	envLoc, slopeLoc, trailLoc int32

	alphaTintLoc, betaTintLoc, gammaTintLoc int32
	channelGammaLoc                         int32
	showAlphaLoc, showBetaLoc, showGammaLoc int32
	gammaHiddenLoc, gammaDebugLoc           int32
	slopeDebugLoc, slopeLightingLoc         int32
	slopeLightDirLoc, slopeLightStrengthLoc int32
	trailShowLoc, trailOpacityLoc           int32
	backgroundLoc                           int32

	target rl.RenderTexture2D

	resolution int
	screenW, screenH int32

	initialized bool
}

// NewEnvLayer creates an environment layer sized for screenW x screenH
// output, sampling a resolution x resolution grid.
func NewEnvLayer(resolution int, screenW, screenH int32) *EnvLayer {
	return &EnvLayer{resolution: resolution, screenW: screenW, screenH: screenH}
}

// Init allocates GPU textures and loads the shader. Must be called after
// the raylib window exists.
func (e *EnvLayer) Init() {
	if e.initialized {
		return
	}
	r := e.resolution

	envImg := rl.GenImageColor(r, r, rl.Black)
	e.envTex = rl.LoadTextureFromImage(envImg)
	rl.SetTextureFilter(e.envTex, rl.FilterBilinear)
	rl.SetTextureWrap(e.envTex, rl.WrapClamp)
	rl.UnloadImage(envImg)

	slopeImg := rl.GenImageColor(r, r, rl.Gray)
	e.slopeTex = rl.LoadTextureFromImage(slopeImg)
	rl.SetTextureFilter(e.slopeTex, rl.FilterBilinear)
	rl.SetTextureWrap(e.slopeTex, rl.WrapClamp)
	rl.UnloadImage(slopeImg)

	trailImg := rl.GenImageColor(r, r, rl.Black)
	e.trailTex = rl.LoadTextureFromImage(trailImg)
	rl.SetTextureFilter(e.trailTex, rl.FilterBilinear)
	rl.SetTextureWrap(e.trailTex, rl.WrapClamp)
	rl.UnloadImage(trailImg)

	e.shader = rl.LoadShader("", "shaders/env.fs")
	e.envLoc = rl.GetShaderLocation(e.shader, "envTex")
	e.slopeLoc = rl.GetShaderLocation(e.shader, "slopeTex")
	e.trailLoc = rl.GetShaderLocation(e.shader, "trailTex")
	e.alphaTintLoc = rl.GetShaderLocation(e.shader, "alphaTint")
	e.betaTintLoc = rl.GetShaderLocation(e.shader, "betaTint")
	e.gammaTintLoc = rl.GetShaderLocation(e.shader, "gammaTint")
	e.channelGammaLoc = rl.GetShaderLocation(e.shader, "channelGamma")
	e.showAlphaLoc = rl.GetShaderLocation(e.shader, "showAlpha")
	e.showBetaLoc = rl.GetShaderLocation(e.shader, "showBeta")
	e.showGammaLoc = rl.GetShaderLocation(e.shader, "showGamma")
	e.gammaHiddenLoc = rl.GetShaderLocation(e.shader, "gammaHidden")
	e.gammaDebugLoc = rl.GetShaderLocation(e.shader, "gammaDebug")
	e.slopeDebugLoc = rl.GetShaderLocation(e.shader, "slopeDebug")
	e.slopeLightingLoc = rl.GetShaderLocation(e.shader, "slopeLighting")
	e.slopeLightDirLoc = rl.GetShaderLocation(e.shader, "slopeLightDir")
	e.slopeLightStrengthLoc = rl.GetShaderLocation(e.shader, "slopeLightStrength")
	e.trailShowLoc = rl.GetShaderLocation(e.shader, "trailShow")
	e.trailOpacityLoc = rl.GetShaderLocation(e.shader, "trailOpacity")
	e.backgroundLoc = rl.GetShaderLocation(e.shader, "backgroundColor")

	e.target = rl.LoadRenderTexture(e.screenW, e.screenH)

	e.initialized = true
}

// Update uploads the grid's current alpha/beta/gamma, slope, and trail
// channels to the GPU textures. The authoritative state stays the CPU
// slices in envgrid.Grid; this texture is a presentation-only mirror
// (spec §0 framing); main.go refreshes it once per frame, after that
// frame's ticks have run.
func (e *EnvLayer) Update(grid *envgrid.Grid) {
	if !e.initialized {
		e.Init()
	}
	n := grid.R * grid.R

	envPixels := make([]color.RGBA, n)
	slopePixels := make([]color.RGBA, n)
	trailPixels := make([]color.RGBA, n)

	for i := 0; i < n; i++ {
		envPixels[i] = color.RGBA{
			R: to8(grid.Alpha[i]),
			G: to8(grid.Beta[i]),
			B: to8(grid.Gamma[i]),
			A: 255,
		}
		slopePixels[i] = color.RGBA{
			R: to8(grid.SlopeX[i]*0.5 + 0.5),
			G: to8(grid.SlopeY[i]*0.5 + 0.5),
			B: 0,
			A: 255,
		}
		trailPixels[i] = color.RGBA{
			R: to8(grid.TrailR[i]),
			G: to8(grid.TrailG[i]),
			B: to8(grid.TrailB[i]),
			A: 255,
		}
	}

	rl.UpdateTexture(e.envTex, envPixels)
	rl.UpdateTexture(e.slopeTex, slopePixels)
	rl.UpdateTexture(e.trailTex, trailPixels)
}

// Draw renders the environment layer into its own RenderTexture2D
// according to the rendering parameter fields of the uniform block (spec
// §6: per-channel show/blend/tint/gamma, slope lighting, debug toggles),
// returning the texture for Composite to consume.
func (e *EnvLayer) Draw(p *config.Params) rl.RenderTexture2D {
	if !e.initialized {
		e.Init()
	}

	rl.SetShaderValueTexture(e.shader, e.envLoc, e.envTex)
	rl.SetShaderValueTexture(e.shader, e.slopeLoc, e.slopeTex)
	rl.SetShaderValueTexture(e.shader, e.trailLoc, e.trailTex)

	setVec3(e.shader, e.alphaTintLoc, p.AlphaTint)
	setVec3(e.shader, e.betaTintLoc, p.BetaTint)
	setVec3(e.shader, e.gammaTintLoc, p.GammaTint)
	rl.SetShaderValue(e.shader, e.channelGammaLoc, []float32{float32(p.ChannelGamma)}, rl.ShaderUniformFloat)

	setBool(e.shader, e.showAlphaLoc, p.ShowAlpha)
	setBool(e.shader, e.showBetaLoc, p.ShowBeta)
	setBool(e.shader, e.showGammaLoc, p.ShowGamma)
	setBool(e.shader, e.gammaHiddenLoc, p.GammaHidden)
	setBool(e.shader, e.gammaDebugLoc, p.GammaDebug)
	setBool(e.shader, e.slopeDebugLoc, p.SlopeDebug)
	setBool(e.shader, e.slopeLightingLoc, p.SlopeLighting)

	rl.SetShaderValue(e.shader, e.slopeLightDirLoc,
		[]float32{float32(p.SlopeLightDirX), float32(p.SlopeLightDirY)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(e.shader, e.slopeLightStrengthLoc, []float32{float32(p.SlopeLightStrength)}, rl.ShaderUniformFloat)

	setBool(e.shader, e.trailShowLoc, p.TrailShow)
	rl.SetShaderValue(e.shader, e.trailOpacityLoc, []float32{float32(p.TrailOpacity)}, rl.ShaderUniformFloat)

	setVec3(e.shader, e.backgroundLoc, p.BackgroundColor)

	rl.BeginTextureMode(e.target)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(e.shader)
	rl.DrawRectangle(0, 0, e.screenW, e.screenH, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	return e.target
}

// Resize reallocates the output render target for a new screen size.
func (e *EnvLayer) Resize(w, h int32) {
	if w == e.screenW && h == e.screenH {
		return
	}
	e.screenW, e.screenH = w, h
	if e.initialized {
		rl.UnloadRenderTexture(e.target)
		e.target = rl.LoadRenderTexture(w, h)
	}
}

// Unload releases GPU resources.
func (e *EnvLayer) Unload() {
	if !e.initialized {
		return
	}
	rl.UnloadShader(e.shader)
	rl.UnloadTexture(e.envTex)
	rl.UnloadTexture(e.slopeTex)
	rl.UnloadTexture(e.trailTex)
	rl.UnloadRenderTexture(e.target)
	e.initialized = false
}

func to8(v float32) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}

func setVec3(shader rl.Shader, loc int32, v [3]float64) {
	rl.SetShaderValue(shader, loc, []float32{float32(v[0]), float32(v[1]), float32(v[2])}, rl.ShaderUniformVec3)
}

func setBool(shader rl.Shader, loc int32, v bool) {
	f := float32(0)
	if v {
		f = 1
	}
	rl.SetShaderValue(shader, loc, []float32{f}, rl.ShaderUniformFloat)
}
