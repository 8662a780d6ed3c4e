// Command avdrender renders the frames of an animated vector drawable
// into PNG images or into the pages of a PDF file.
//
// The rendering is described by flags, or by a YAML job file:
//
//	input: drawable/avd_progress.xml
//	resources: res
//	output: out/progress.pdf
//	width: 96
//	fps: 24
//	duration: 1.5s
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benoitkugler/okavd/internal/logging"
)

// delay between a change in the resources and the new rendering
const watchDelay = 200 * time.Millisecond

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args, os.Stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		logging.Errorf("%s", err)
		return 2
	}
	logging.SetVerbose(opts.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !renderJob(opts.job) && !opts.watch {
		return 1
	}
	if !opts.watch {
		return 0
	}

	logging.Infof("watching %s", opts.job.Resources)
	err = watch(ctx, opts.job.Resources, opts.job.Output, watchDelay, func() { renderJob(opts.job) })
	if err != nil {
		logging.Errorf("%s", err)
		return 1
	}
	return 0
}

// renderJob logs the outcome of the rendering, returning
// false on failure.
func renderJob(job Job) bool {
	start := time.Now()
	count, err := render(job)
	if err != nil {
		logging.Errorf("rendering %s: %s", job.Input, err)
		return false
	}
	logging.Infof("%d frames written to %s in %s", count, job.Output, time.Since(start).Round(time.Millisecond))
	return true
}
