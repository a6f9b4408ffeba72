package data

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// HeightMap converts images into surface grids. Pixel intensity (the mean
// of the red, green and blue channels) becomes the height.
type HeightMap struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
	MinY, MaxY float64

	// AutoScaleY stretches the image's own intensity range over
	// [MinY, MaxY] instead of the full 0..255 range.
	AutoScaleY bool
}

func DefaultHeightMap() HeightMap {
	return HeightMap{MaxX: 10, MaxZ: 10, MaxY: 1}
}

// LoadImage decodes a PNG, JPEG, GIF, BMP or TIFF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Rows builds the grid. The bottom image row becomes row 0; X grows with
// the image column and Z with the grid row.
func (h HeightMap) Rows(img image.Image) ([]SurfaceRow, error) {
	b := img.Bounds()
	w, ht := b.Dx(), b.Dy()
	if w == 0 || ht == 0 {
		return nil, ErrEmptyImage
	}

	intensity := make([][]float64, ht)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < ht; i++ {
		y := b.Max.Y - 1 - i
		intensity[i] = make([]float64, w)
		for j := 0; j < w; j++ {
			r, g, bl, _ := img.At(b.Min.X+j, y).RGBA()
			v := float64(r>>8+g>>8+bl>>8) / 3
			intensity[i][j] = v
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}

	if !h.AutoScaleY {
		lo, hi = 0, 255
	}
	span := hi - lo

	rows := make([]SurfaceRow, ht)
	for i := range rows {
		rows[i] = make(SurfaceRow, w)
		z := spread(h.MinZ, h.MaxZ, i, ht)
		for j := range rows[i] {
			y := h.MinY
			if span > 0 {
				y += (intensity[i][j] - lo) / span * (h.MaxY - h.MinY)
			}
			rows[i][j] = SurfaceItem{X: spread(h.MinX, h.MaxX, j, w), Y: y, Z: z}
		}
	}
	return rows, nil
}

// Load decodes path and resets proxy to the resulting grid.
func (h HeightMap) Load(path string, proxy *SurfaceProxy) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	rows, err := h.Rows(img)
	if err != nil {
		return err
	}
	return proxy.ResetArray(rows)
}

func spread(lo, hi float64, i, n int) float64 {
	if n < 2 {
		return lo
	}
	return lo + float64(i)*(hi-lo)/float64(n-1)
}
