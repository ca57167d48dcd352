// Package imaging optimises uploaded images before they are sent to an
// asset host: large images are scaled down to fit a bounding box and every
// image is re-encoded as JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Default bounds and quality for optimised uploads.
const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080
	DefaultQuality   = 85
)

// ErrInvalidBounds is returned for non-positive bounds or quality.
var ErrInvalidBounds = errors.New("imaging: bounds and quality must be positive")

// Options controls Optimize.
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// DefaultOptions fits images inside 1920x1080 at JPEG quality 85.
func DefaultOptions() Options {
	return Options{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight, Quality: DefaultQuality}
}

// Result is an optimised image.
type Result struct {
	Data           []byte
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
	Format         string
}

// Resized reports whether the image was scaled down.
func (r *Result) Resized() bool {
	return r.Width != r.OriginalWidth || r.Height != r.OriginalHeight
}

// Optimize decodes a JPEG, PNG, GIF or WebP image, scales it down to fit
// inside the configured box without enlarging it, and encodes it as JPEG.
// The reported dimensions are read back from the encoded output.
func Optimize(r io.Reader, opts Options) (*Result, error) {
	if opts.MaxWidth <= 0 || opts.MaxHeight <= 0 || opts.Quality <= 0 {
		return nil, ErrInvalidBounds
	}

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tw, th := FitInside(w, h, opts.MaxWidth, opts.MaxHeight)

	// JPEG has no alpha channel; flatten onto white.
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if tw != w || th != h {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("read encoded dimensions: %w", err)
	}

	return &Result{
		Data:           buf.Bytes(),
		Width:          cfg.Width,
		Height:         cfg.Height,
		OriginalWidth:  w,
		OriginalHeight: h,
		Format:         format,
	}, nil
}

// FitInside returns the largest size with the aspect ratio of w x h that
// fits inside maxW x maxH. Sizes already inside the box are returned as is.
func FitInside(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return clamp(nw, 1, maxW), clamp(nh, 1, maxH)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
