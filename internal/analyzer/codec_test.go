package analyzer

import (
	"bytes"
	"image/color"
	"testing"
)

func TestFormatForLocation(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"out/heatmap.png", FormatPNG},
		{"out/heatmap.JPG", FormatJPEG},
		{"heatmap.jpeg", FormatJPEG},
		{"heatmap.gif", FormatGIF},
		{"heatmap.bmp", FormatBMP},
		{"heatmap.tif", FormatTIFF},
		{"az://heatmaps/stage-a.tiff", FormatTIFF},
		{"heatmap", FormatPNG},
		{"heatmap.unknown", FormatPNG},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			if got := FormatForLocation(tt.location); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEncodeDecodeFormats(t *testing.T) {
	img := createTestImage(8, 6, color.RGBA{10, 120, 240, 255})

	for _, format := range []string{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encodeImage(&buf, img, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, got, err := decodeImage(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != format {
				t.Errorf("Expected decoded format %s, got %s", format, got)
			}
			if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 6 {
				t.Errorf("Expected 8x6, got %v", decoded.Bounds())
			}
		})
	}
}

func TestEncodeImage_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeImage(&buf, createTestImage(1, 1, color.RGBA{}), "exr"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	if _, _, err := decodeImage(bytes.NewReader([]byte("definitely not an image"))); err == nil {
		t.Error("Expected error decoding garbage")
	}
}
