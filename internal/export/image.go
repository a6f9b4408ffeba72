package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"github.com/san-kum/datavis3d/internal/viz"
)

// Formats lists the image extensions WriteImage understands.
var Formats = []string{".png", ".bmp", ".tif", ".tiff", ".gif"}

// RenderImage rasterises c with cell pixels per cell and writes title in
// the top left corner.
func RenderImage(c *viz.Canvas, cell int, th viz.Theme, title string) *image.RGBA {
	img := c.Image(cell, viz.ToRGBA(th.Background))
	if title != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(viz.ToRGBA(th.Text)),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, 4+basicfont.Face7x13.Ascent),
		}
		d.DrawString(title)
	}
	return img
}

// EncodeImage writes img in the format named by ext.
func EncodeImage(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".gif":
		p := image.NewPaletted(img.Bounds(), palette.WebSafe)
		draw.Draw(p, p.Bounds(), img, img.Bounds().Min, draw.Src)
		return gif.Encode(w, p, nil)
	}
	return fmt.Errorf("export: unsupported image format %q", ext)
}

// WriteImage picks the format from the file extension of path.
func WriteImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeImage(f, filepath.Ext(path), img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
