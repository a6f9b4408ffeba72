package export

import (
	"context"
	"io"

	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/viz"
)

// Orbit renders one full turn of the camera around g in frames steps and
// writes it as an animated GIF. The graph camera is restored afterwards.
func Orbit(ctx context.Context, w io.Writer, g *graph.Graph, rec *scene.Recorder, r *viz.Renderer, frames int) error {
	if frames < 1 {
		frames = 1
	}
	start := g.Camera()
	defer g.SetCamera(start)

	clip := viz.NewRecording()
	for i := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		cam := start
		cam.XRotation = start.XRotation + 360*float64(i)/float64(frames)
		if cam.XRotation > 180 {
			cam.XRotation -= 360
		}
		g.SetCamera(cam)
		f, err := g.Sync()
		if err != nil {
			return err
		}
		r.Draw(rec, f)
		clip.Capture(r.Canvas, r.Theme)
	}
	return clip.Encode(w)
}
