package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Job describes a rendering, as read from a YAML file
// and the command line.
type Job struct {
	// Input is the animated-vector file, relative to Resources
	Input string `yaml:"input"`
	// Resources is the directory the references are resolved from
	Resources string `yaml:"resources"`
	// Output is a directory for PNG frames, or a PDF file
	Output string `yaml:"output"`
	Format string `yaml:"format"` // png or pdf
	// PDFWriter selects the PDF backend: gofpdf or contentstream
	PDFWriter string `yaml:"pdfWriter"`

	// Width and Height default to the intrinsic size of the drawable
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	FPS float64 `yaml:"fps"`
	// Duration defaults to the total duration of the animations,
	// and is required when they repeat infinitely
	Duration time.Duration `yaml:"duration"`

	// Supersample renders PNG frames at a higher resolution
	// before scaling them down.
	Supersample int    `yaml:"supersample"`
	Direction   string `yaml:"direction"` // ltr or rtl
}

const (
	formatPNG = "png"
	formatPDF = "pdf"

	writerGofpdf        = "gofpdf"
	writerContentStream = "contentstream"
)

// loadJob reads a job file. Relative paths are resolved
// from the directory of the file.
func loadJob(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, err
	}
	defer f.Close()

	var job Job
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&job); err != nil && err != io.EOF {
		return Job{}, fmt.Errorf("reading job %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if job.Resources != "" && !filepath.IsAbs(job.Resources) {
		job.Resources = filepath.Join(dir, job.Resources)
	}
	if job.Output != "" && !filepath.IsAbs(job.Output) {
		job.Output = filepath.Join(dir, job.Output)
	}
	return job, nil
}

func (j *Job) setDefaults() {
	if j.Resources == "" {
		j.Resources = "."
	}
	if j.Format == "" {
		j.Format = formatPNG
		if strings.EqualFold(filepath.Ext(j.Output), ".pdf") {
			j.Format = formatPDF
		}
	}
	if j.Output == "" {
		j.Output = "frames"
		if j.Format == formatPDF {
			j.Output = "frames.pdf"
		}
	}
	if j.PDFWriter == "" {
		j.PDFWriter = writerGofpdf
	}
	if j.FPS == 0 {
		j.FPS = 30
	}
	if j.Supersample == 0 {
		j.Supersample = 1
	}
	if j.Direction == "" {
		j.Direction = "ltr"
	}
}

func (j Job) validate() error {
	if j.Input == "" {
		return errors.New("missing input file")
	}
	switch j.Format {
	case formatPNG, formatPDF:
	default:
		return fmt.Errorf("unsupported format %q", j.Format)
	}
	switch j.PDFWriter {
	case writerGofpdf, writerContentStream:
	default:
		return fmt.Errorf("unsupported PDF writer %q", j.PDFWriter)
	}
	switch j.Direction {
	case "ltr", "rtl":
	default:
		return fmt.Errorf("invalid layout direction %q", j.Direction)
	}
	if j.Width < 0 || j.Height < 0 {
		return fmt.Errorf("invalid size %dx%d", j.Width, j.Height)
	}
	if j.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %g", j.FPS)
	}
	if j.Duration < 0 {
		return fmt.Errorf("invalid duration %s", j.Duration)
	}
	if j.Supersample < 1 || j.Supersample > 8 {
		return fmt.Errorf("supersample must be in [1, 8], got %d", j.Supersample)
	}
	return nil
}

type options struct {
	job     Job
	jobFile string
	watch   bool
	verbose bool
}

// parseArgs merges the job file, if any, with the flags,
// the later taking precedence.
func parseArgs(args []string, errOutput io.Writer) (options, error) {
	fs := flag.NewFlagSet("avdrender", flag.ContinueOnError)
	fs.SetOutput(errOutput)
	fs.Usage = func() {
		fmt.Fprintf(errOutput, "Renders the frames of an animated vector drawable.\n\nUsage: avdrender [flags] [input]\n\n")
		fs.PrintDefaults()
	}

	var (
		opts options
		cli  Job
	)
	fs.StringVar(&opts.jobFile, "job", "", "YAML job file, overridden by the other flags")
	fs.StringVar(&cli.Input, "in", "", "animated-vector file, relative to the resource directory")
	fs.StringVar(&cli.Resources, "res", "", "resource directory (default \".\")")
	fs.StringVar(&cli.Output, "out", "", "output directory (png) or file (pdf)")
	fs.StringVar(&cli.Format, "format", "", "output format: png or pdf")
	fs.StringVar(&cli.PDFWriter, "pdf-writer", "", "PDF backend: gofpdf or contentstream")
	fs.IntVar(&cli.Width, "width", 0, "frame width (default intrinsic width)")
	fs.IntVar(&cli.Height, "height", 0, "frame height (default intrinsic height)")
	fs.Float64Var(&cli.FPS, "fps", 0, "frames per second (default 30)")
	fs.DurationVar(&cli.Duration, "duration", 0, "rendered duration (default animation duration)")
	fs.IntVar(&cli.Supersample, "supersample", 0, "supersampling factor for PNG frames (default 1)")
	fs.StringVar(&cli.Direction, "dir", "", "layout direction: ltr or rtl")
	fs.BoolVar(&opts.watch, "watch", false, "render again when the resources change")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logs")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.jobFile != "" {
		var err error
		if opts.job, err = loadJob(opts.jobFile); err != nil {
			return opts, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			opts.job.Input = cli.Input
		case "res":
			opts.job.Resources = cli.Resources
		case "out":
			opts.job.Output = cli.Output
		case "format":
			opts.job.Format = cli.Format
		case "pdf-writer":
			opts.job.PDFWriter = cli.PDFWriter
		case "width":
			opts.job.Width = cli.Width
		case "height":
			opts.job.Height = cli.Height
		case "fps":
			opts.job.FPS = cli.FPS
		case "duration":
			opts.job.Duration = cli.Duration
		case "supersample":
			opts.job.Supersample = cli.Supersample
		case "dir":
			opts.job.Direction = cli.Direction
		}
	})
	switch fs.NArg() {
	case 0:
	case 1:
		opts.job.Input = fs.Arg(0)
	default:
		return opts, fmt.Errorf("too many arguments: %v", fs.Args())
	}
	opts.job.setDefaults()
	return opts, opts.job.validate()
}
