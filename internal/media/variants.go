package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedMedia is returned when the input cannot be decoded as an
// image. Non-retryable: the caller must treat the whole upload as failed
// or re-upload without resizing.
var ErrUnsupportedMedia = errors.New("media: undecodable image input")

// EncodingError is returned when a variant cannot be produced.
// Non-retryable.
type EncodingError struct {
	Variant string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("media: encoding variant %q: %v", e.Variant, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// VariantSpec is a named resize target. Fixed process-wide configuration,
// not per-file.
type VariantSpec struct {
	Name   string
	Width  int
	Height int
}

// DefaultVariants are the sizes every resized upload gets
func DefaultVariants() []VariantSpec {
	return []VariantSpec{
		{Name: "thumbnail", Width: 150, Height: 150},
		{Name: "medium", Width: 300, Height: 300},
		{Name: "large", Width: 800, Height: 800},
	}
}

// Result holds the re-encoded original and the encoded bytes per variant name
type Result struct {
	Original []byte
	Variants map[string][]byte
}

// Generator turns one source image into N derived images. Pure transform,
// never touches storage.
type Generator struct {
	specs []VariantSpec
}

func NewGenerator(specs []VariantSpec) *Generator {
	if len(specs) == 0 {
		specs = DefaultVariants()
	}
	return &Generator{specs: specs}
}

func (g *Generator) Specs() []VariantSpec {
	return g.specs
}

// Generate decodes the source once, then produces every configured variant
// with fill semantics: scale and center-crop so the output matches the
// configured dimensions exactly. When optimize is set, higher-effort encoding settings
// are applied to the original and every variant.
func (g *Generator) Generate(data []byte, optimize bool) (*Result, error) {
	src, formatName, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	format, err := imaging.FormatFromExtension(formatName)
	if err != nil {
		return nil, fmt.Errorf("%w: no encoder for %s", ErrUnsupportedMedia, formatName)
	}

	opts := encodeOptions(format, optimize)

	original, err := encode(src, format, opts)
	if err != nil {
		return nil, &EncodingError{Variant: "original", Err: err}
	}

	variants := make(map[string][]byte, len(g.specs))
	for _, spec := range g.specs {
		if spec.Width <= 0 || spec.Height <= 0 {
			return nil, &EncodingError{Variant: spec.Name, Err: fmt.Errorf("degenerate dimensions %dx%d", spec.Width, spec.Height)}
		}

		resized := imaging.Fill(src, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)
		encoded, err := encode(resized, format, opts)
		if err != nil {
			return nil, &EncodingError{Variant: spec.Name, Err: err}
		}
		variants[spec.Name] = encoded
	}

	return &Result{Original: original, Variants: variants}, nil
}

func encode(img image.Image, format imaging.Format, opts []imaging.EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeOptions(format imaging.Format, optimize bool) []imaging.EncodeOption {
	if !optimize {
		return nil
	}
	switch format {
	case imaging.JPEG:
		return []imaging.EncodeOption{imaging.JPEGQuality(80)}
	case imaging.PNG:
		return []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestCompression)}
	default:
		return nil
	}
}
