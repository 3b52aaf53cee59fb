// Package assets loads texture images from disk and hands the render loop
// raw decoded pixels plus their dimensions.
package assets

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/pkuiper/glquad/lib/config"
)

// TextureImage is decoded, tightly packed RGBA pixel data.
type TextureImage struct {
	Pix    []uint8
	Width  int
	Height int
}

// Load decodes the configured texture file, downscaling it when either side
// exceeds max_size. Without a configured path it returns a generated
// checkerboard.
func Load(cfg *config.TextureCfg) (*TextureImage, error) {
	if cfg.Path == "" {
		slog.Info("no texture configured, using checkerboard", slog.String("module", "assets"))
		return Checkerboard(256, 32), nil
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", cfg.Path, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Error(fmt.Sprintf("could not close %s: %s", cfg.Path, err), slog.String("module", "assets"))
		}
	}(f)

	img, ftype, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s is not a decodable image: %w", cfg.Path, err)
	}
	slog.Info(
		fmt.Sprintf("loaded %s texture %s (%dx%d)", ftype, cfg.Path, img.Bounds().Dx(), img.Bounds().Dy()),
		slog.String("module", "assets"),
	)

	return FromImage(img, cfg.MaxSize), nil
}

// FromImage converts any image to tightly packed RGBA, scaling it down to
// fit maxSize on both sides. maxSize <= 0 disables the clamp.
func FromImage(img image.Image, maxSize int) *TextureImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		scale := float64(maxSize) / float64(max(w, h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), img, bounds, xdraw.Src, nil)

	return &TextureImage{
		Pix:    rgba.Pix,
		Width:  w,
		Height: h,
	}
}

// Checkerboard generates a grey/white board, used when no texture path is
// configured.
func Checkerboard(size, cell int) *TextureImage {
	t := &TextureImage{
		Pix:    make([]uint8, size*size*4),
		Width:  size,
		Height: size,
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(0xff)
			if (x/cell+y/cell)%2 == 0 {
				v = 0x99
			}
			i := (y*size + x) * 4
			t.Pix[i+0] = v
			t.Pix[i+1] = v
			t.Pix[i+2] = v
			t.Pix[i+3] = 0xff
		}
	}
	return t
}
