package viz

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

var ErrNoFrames = errors.New("viz: no frames recorded")

// Recording collects canvas frames for an animated GIF.
type Recording struct {
	// Cell is the pixel width of one canvas cell.
	Cell   int
	// Delay between frames in hundredths of a second.
	Delay  int
	frames []*image.Paletted
}

func NewRecording() *Recording {
	return &Recording{Cell: 8, Delay: 4}
}

func (r *Recording) Len() int { return len(r.frames) }

// Capture rasterises the current canvas onto the web safe palette.
func (r *Recording) Capture(c *Canvas, th Theme) {
	src := c.Image(r.Cell, ToRGBA(th.Background))
	dst := image.NewPaletted(src.Bounds(), palette.WebSafe)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	r.frames = append(r.frames, dst)
}

// Encode writes the frames as a looping GIF.
func (r *Recording) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recording) Reset() { r.frames = r.frames[:0] }
