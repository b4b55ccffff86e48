package ui

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// One pass of a 9-tap Gaussian blur along Dir; run it twice for 2D.
var blurShader = []byte(`
//kage:unit pixels

package main

var Dir vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    var result vec4

    result += imageSrc0At(srcPos - 4*Dir) * 0.0162
    result += imageSrc0At(srcPos - 3*Dir) * 0.0540
    result += imageSrc0At(srcPos - 2*Dir) * 0.1218
    result += imageSrc0At(srcPos - 1*Dir) * 0.1954
    result += imageSrc0At(srcPos) * 0.2252
    result += imageSrc0At(srcPos + 1*Dir) * 0.1954
    result += imageSrc0At(srcPos + 2*Dir) * 0.1218
    result += imageSrc0At(srcPos + 3*Dir) * 0.0540
    result += imageSrc0At(srcPos + 4*Dir) * 0.0162

    return result
}
`)

// Wave refraction and tint over the blurred backdrop.
var glassShader = []byte(`
//kage:unit pixels

package main

var Time float
var Tint vec4
var Refraction float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    distortion := vec2(
        sin(srcPos.y * 0.03 + Time * 1.5) * Refraction,
        cos(srcPos.x * 0.03 + Time * 1.2) * Refraction * 0.7,
    )
    blurred := imageSrc0At(srcPos + distortion)
    return mix(blurred, vec4(Tint.rgb, 1.0), Tint.a)
}
`)

// GlassEffect blurs whatever is behind a modal dialog. When the shaders fail
// to compile it falls back to a flat tint.
type GlassEffect struct {
	blur  *ebiten.Shader
	glass *ebiten.Shader

	// Offscreen buffers for the two blur passes.
	bufA, bufB *ebiten.Image

	time    float64
	enabled bool
}

// NewGlassEffect compiles the shaders.
func NewGlassEffect() *GlassEffect {
	ge := &GlassEffect{}

	var err error
	if ge.blur, err = ebiten.NewShader(blurShader); err != nil {
		log.Printf("Warning: blur shader unavailable: %v", err)
		return ge
	}
	if ge.glass, err = ebiten.NewShader(glassShader); err != nil {
		log.Printf("Warning: glass shader unavailable: %v", err)
		return ge
	}
	ge.enabled = true
	return ge
}

// IsEnabled returns whether the glass effect is available.
func (ge *GlassEffect) IsEnabled() bool {
	return ge != nil && ge.enabled
}

// Update advances the refraction wave by one tick.
func (ge *GlassEffect) Update() {
	if ge == nil {
		return
	}
	ge.time += 1.0 / float64(ebiten.TPS())
}

func (ge *GlassEffect) ensureImages(w, h int) {
	if ge.bufA == nil || ge.bufA.Bounds().Dx() != w || ge.bufA.Bounds().Dy() != h {
		ge.bufA = ebiten.NewImage(w, h)
		ge.bufB = ebiten.NewImage(w, h)
	}
}

// DrawGlass blurs and tints the region (x, y, w, h) of screen, given in
// screen pixels. sigma spreads the blur taps; refraction is the wave
// amplitude in pixels.
func (ge *GlassEffect) DrawGlass(screen *ebiten.Image, x, y, w, h int, tint color.RGBA, sigma, refraction float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if !ge.IsEnabled() {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), tint, false)
		return
	}

	ge.ensureImages(w, h)
	ge.bufA.Clear()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(-x), float64(-y))
	ge.bufA.DrawImage(screen, op)

	ge.pass(ge.bufA, ge.bufB, w, h, []float32{float32(sigma), 0})
	ge.pass(ge.bufB, ge.bufA, w, h, []float32{0, float32(sigma)})

	gop := &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			"Time": float32(ge.time),
			"Tint": []float32{
				float32(tint.R) / 255, float32(tint.G) / 255,
				float32(tint.B) / 255, float32(tint.A) / 255,
			},
			"Refraction": float32(refraction),
		},
		Images: [4]*ebiten.Image{ge.bufA},
	}
	gop.GeoM.Translate(float64(x), float64(y))
	screen.DrawRectShader(w, h, ge.glass, gop)
}

func (ge *GlassEffect) pass(src, dst *ebiten.Image, w, h int, dir []float32) {
	dst.Clear()
	dst.DrawRectShader(w, h, ge.blur, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{"Dir": dir},
		Images:   [4]*ebiten.Image{src},
	})
}
