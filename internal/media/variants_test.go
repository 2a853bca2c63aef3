package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode source: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode variant: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestGenerateFitExactness(t *testing.T) {
	gen := NewGenerator(nil)

	sources := []struct {
		name string
		w, h int
	}{
		{"square", 1000, 1000},
		{"landscape", 1600, 900},
		{"portrait", 600, 1200},
		{"tiny", 40, 30},
	}

	for _, src := range sources {
		t.Run(src.name, func(t *testing.T) {
			res, err := gen.Generate(jpegBytes(t, src.w, src.h), true)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}

			for _, spec := range gen.Specs() {
				data, ok := res.Variants[spec.Name]
				if !ok {
					t.Fatalf("missing variant %s", spec.Name)
				}
				w, h := decodeDims(t, data)
				if w != spec.Width || h != spec.Height {
					t.Errorf("%s: got %dx%d, want exactly %dx%d", spec.Name, w, h, spec.Width, spec.Height)
				}
			}

			if len(res.Original) == 0 {
				t.Error("original bytes missing")
			}
		})
	}
}

func TestGenerateRejectsNonImages(t *testing.T) {
	gen := NewGenerator(nil)

	_, err := gen.Generate([]byte("definitely not an image"), false)
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("want ErrUnsupportedMedia, got %v", err)
	}
}

func TestGenerateDegenerateDimensions(t *testing.T) {
	gen := NewGenerator([]VariantSpec{{Name: "broken", Width: 0, Height: 150}})

	_, err := gen.Generate(jpegBytes(t, 100, 100), false)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("want EncodingError, got %v", err)
	}
	if encErr.Variant != "broken" {
		t.Errorf("variant = %q, want broken", encErr.Variant)
	}
}

func TestGenerateKeepsSourceFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	gen := NewGenerator(nil)
	res, err := gen.Generate(buf.Bytes(), true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(res.Original))
	if err != nil {
		t.Fatalf("decode original: %v", err)
	}
	if format != "png" {
		t.Errorf("original re-encoded as %s, want png", format)
	}
}
