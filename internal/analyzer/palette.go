package analyzer

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps 8-bit intensities to colors
type Palette [256]color.RGBA

type anchor struct {
	pos, val float64
}

// Piecewise-linear jet channels: dark blue, blue, cyan, yellow, red, dark red
var (
	jetRed   = []anchor{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}}
	jetGreen = []anchor{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}}
	jetBlue  = []anchor{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}}
)

// JetPalette builds the blue-to-red jet color map
func JetPalette() *Palette {
	var p Palette
	for i := range p {
		t := float64(i) / 255
		c := colorful.Color{
			R: interpolate(jetRed, t),
			G: interpolate(jetGreen, t),
			B: interpolate(jetBlue, t),
		}.Clamped()
		r, g, b := c.RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return &p
}

func interpolate(anchors []anchor, t float64) float64 {
	for i := 1; i < len(anchors); i++ {
		lo, hi := anchors[i-1], anchors[i]
		if t <= hi.pos {
			frac := (t - lo.pos) / (hi.pos - lo.pos)
			return lo.val + frac*(hi.val-lo.val)
		}
	}
	return anchors[len(anchors)-1].val
}

// Colorize maps every pixel of gray through the palette
func (p *Palette) Colorize(gray *image.Gray) *image.RGBA {
	b := gray.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := p[gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)]]
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}
	return out
}
