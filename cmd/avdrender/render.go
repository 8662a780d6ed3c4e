package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/benoitkugler/okavd/animatedvector"
	"github.com/benoitkugler/okavd/animator"
	"github.com/benoitkugler/okavd/internal/logging"
	"github.com/benoitkugler/okavd/svgicon"
	"github.com/benoitkugler/okavd/svgpdf"
	"github.com/benoitkugler/okavd/svgpdf/alt"
	"github.com/benoitkugler/okavd/svgraster"
	"github.com/disintegration/imaging"
)

var errInfiniteAnimation = errors.New("infinite animation: a duration is required")

type frameWriter interface {
	addFrame(index int, d *animatedvector.Drawable) error
	close() error
}

// pngWriter saves one file per frame
type pngWriter struct {
	dir           string
	width, height int
	supersample   int
}

func (w pngWriter) addFrame(index int, d *animatedvector.Drawable) error {
	var img image.Image = svgraster.RasterFrame(d, w.width*w.supersample, w.height*w.supersample)
	if w.supersample > 1 {
		img = imaging.Resize(img, w.width, w.height, imaging.Lanczos)
	}
	return imaging.Save(img, filepath.Join(w.dir, fmt.Sprintf("frame_%04d.png", index)))
}

func (w pngWriter) close() error { return nil }

// pdfWriter adds one page per frame
type pdfWriter struct {
	doc  *svgpdf.Document
	file string
}

func (w pdfWriter) addFrame(_ int, d *animatedvector.Drawable) error {
	w.doc.AddFrame(d)
	return nil
}

func (w pdfWriter) close() error {
	f, err := os.Create(w.file)
	if err != nil {
		return err
	}
	if err = w.doc.Output(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// streamWriter is the content stream variant of pdfWriter
type streamWriter struct {
	doc  *alt.Document
	file string
}

func (w streamWriter) addFrame(_ int, d *animatedvector.Drawable) error {
	w.doc.AddFrame(d)
	return nil
}

func (w streamWriter) close() error { return w.doc.WriteFile(w.file) }

// frameCount returns the number of frames needed to show
// `duration`, both ends included.
func frameCount(duration time.Duration, fps float64) int {
	return int(duration.Seconds()*fps+1e-9) + 1
}

// render loads the drawable of the job, plays it and writes its frames.
// It returns the number of frames written.
func render(job Job) (int, error) {
	res := animatedvector.NewResources(os.DirFS(job.Resources))
	frames := animator.NewHandler()
	d, err := animatedvector.Load(res, job.Input, animatedvector.WithHandler(frames))
	if err != nil {
		return 0, err
	}
	width, height := job.Width, job.Height
	if width == 0 {
		width = d.IntrinsicWidth()
	}
	if height == 0 {
		height = d.IntrinsicHeight()
	}
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("%s has no size: set the width and height", job.Input)
	}
	if job.Direction == "rtl" {
		d.SetLayoutDirection(svgicon.RightToLeft)
	}

	var out frameWriter
	switch job.Format {
	case formatPDF:
		d.SetBounds(image.Rect(0, 0, width, height))
		if job.PDFWriter == writerContentStream {
			out = streamWriter{doc: alt.NewDocument(float64(width), float64(height)), file: job.Output}
		} else {
			out = pdfWriter{doc: svgpdf.NewDocument(float64(width), float64(height)), file: job.Output}
		}
	default:
		if err = os.MkdirAll(job.Output, os.ModePerm); err != nil {
			return 0, err
		}
		d.SetBounds(image.Rect(0, 0, width*job.Supersample, height*job.Supersample))
		out = pngWriter{dir: job.Output, width: width, height: height, supersample: job.Supersample}
	}

	d.Start()
	defer d.Stop()
	duration := job.Duration
	if duration == 0 {
		duration = d.AnimatorSet().TotalDuration()
		if duration == animator.DurationInfinite {
			return 0, errInfiniteAnimation
		}
	}

	count := frameCount(duration, job.FPS)
	logging.Debugf("rendering %d frames of %s (%dx%d)", count, job.Input, width, height)
	for i := 0; i < count; i++ {
		frames.DoFrame(time.Duration(float64(i) / job.FPS * float64(time.Second)))
		if err = out.addFrame(i, d); err != nil {
			return i, err
		}
	}
	return count, out.close()
}
