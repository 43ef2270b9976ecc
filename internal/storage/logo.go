package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	LogoMaxSide     = 512
	LogoContentType = "image/webp"
	logoQuality     = 85

	// decoding allocates width*height pixels regardless of file size
	LogoMaxPixels = 4096 * 4096
)

var ErrLogoDimensions = errors.New("logo: image dimensions too large")

// EncodeLogo decodes a PNG, JPEG or WebP image, shrinks it to fit within
// maxSide pixels keeping its aspect ratio, and re-encodes it as WebP. Smaller
// images keep their size. Images declaring more than LogoMaxPixels fail with
// ErrLogoDimensions before any pixel is decoded.
func EncodeLogo(r io.Reader, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		maxSide = LogoMaxSide
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("logo: read: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("logo: decode header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > LogoMaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrLogoDimensions, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("logo: decode: %w", err)
	}

	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), maxSide)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: logoQuality}); err != nil {
		return nil, fmt.Errorf("logo: encode %s as webp: %w", format, err)
	}
	return buf.Bytes(), nil
}

func fit(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}
