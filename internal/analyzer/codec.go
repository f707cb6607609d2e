package analyzer

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Output formats selected from the destination extension
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

var extensionFormats = map[string]string{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// decodeImage decodes any registered raster format
func decodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// FormatForLocation picks the output encoding from the location's
// extension. Unknown or missing extensions encode as PNG.
func FormatForLocation(location string) string {
	ext := strings.ToLower(path.Ext(location))
	if format, ok := extensionFormats[ext]; ok {
		return format
	}
	return FormatPNG
}

// encodeImage writes img to w in the given format
func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, nil)
	case FormatPNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
