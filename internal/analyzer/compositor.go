package analyzer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// nativeCompositor implements Compositor in pure Go
type nativeCompositor struct {
	palette       *Palette
	imageWeight   float64
	overlayWeight float64
}

// NewNativeCompositor creates a jet-palette compositor with the given blend weights
func NewNativeCompositor(imageWeight, overlayWeight float64) Compositor {
	return &nativeCompositor{
		palette:       JetPalette(),
		imageWeight:   imageWeight,
		overlayWeight: overlayWeight,
	}
}

// Compose colorizes heat and blends it over base
func (c *nativeCompositor) Compose(base image.Image, heat *image.Gray) (image.Image, error) {
	b := base.Bounds()
	if heat.Bounds().Dx() != b.Dx() || heat.Bounds().Dy() != b.Dy() {
		return nil, fmt.Errorf("heat map %dx%d does not match image %dx%d",
			heat.Bounds().Dx(), heat.Bounds().Dy(), b.Dx(), b.Dy())
	}

	overlay := c.palette.Colorize(heat)
	return Blend(toOpaque(base), overlay, c.imageWeight, c.overlayWeight)
}

// Blend computes round(imageWeight*base + overlayWeight*overlay) per pixel
// and channel, saturated to 8 bits. Both images must have equal size.
func Blend(base, overlay *image.RGBA, imageWeight, overlayWeight float64) (*image.RGBA, error) {
	bb, ob := base.Bounds(), overlay.Bounds()
	if bb.Dx() != ob.Dx() || bb.Dy() != ob.Dy() {
		return nil, fmt.Errorf("overlay %dx%d does not match image %dx%d", ob.Dx(), ob.Dy(), bb.Dx(), bb.Dy())
	}

	out := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	for y := 0; y < bb.Dy(); y++ {
		for x := 0; x < bb.Dx(); x++ {
			si := base.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			oi := overlay.PixOffset(ob.Min.X+x, ob.Min.Y+y)
			di := out.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				out.Pix[di+ch] = saturate(imageWeight*float64(base.Pix[si+ch]) + overlayWeight*float64(overlay.Pix[oi+ch]))
			}
			out.Pix[di+3] = 0xff
		}
	}
	return out, nil
}

func saturate(v float64) uint8 {
	v = math.RoundToEven(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// toOpaque converts img to a zero-origin RGBA with alpha discarded.
// Color channels are kept as stored, not premultiplied, so a fully
// transparent pixel keeps its RGB whatever the source encoding.
func toOpaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.Paletted:
		lut := make([][3]uint8, len(src.Palette))
		for i, c := range src.Palette {
			lut[i] = straightRGB(c)
		}
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				idx := int(src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)])
				if idx < len(lut) {
					di := out.PixOffset(x, y)
					copy(out.Pix[di:di+3], lut[idx][:])
				}
			}
		}
	case *image.NRGBA64:
		// Big-endian samples: the high byte comes first
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
				di := out.PixOffset(x, y)
				out.Pix[di+0] = src.Pix[si+0]
				out.Pix[di+1] = src.Pix[si+2]
				out.Pix[di+2] = src.Pix[si+4]
			}
		}
	default:
		nrgba := image.NewNRGBA(out.Bounds())
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
		copy(out.Pix, nrgba.Pix)
	}

	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

func straightRGB(c color.Color) [3]uint8 {
	n, ok := c.(color.NRGBA)
	if !ok {
		n = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return [3]uint8{n.R, n.G, n.B}
}
