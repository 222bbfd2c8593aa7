package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/FoxSamu/chestconv"
	"github.com/lmittmann/tint"
)

var (
	fromPath     = flag.String("from", ".", "set the folder to read legacy textures from")
	toPath       = flag.String("to", "converted", "set the folder to write converted textures to")
	flipSingle   = flag.Bool("flip-single", false, "treat front and back of single chests as already swapped")
	debug        = flag.Bool("debug", false, "paint face layouts into the outputs")
	manifestPath = flag.String("manifest", "", "read jobs from a JSON manifest")
	scan         = flag.Bool("scan", false, "convert every chest texture found in the source folder")
	workers      = flag.Int("workers", runtime.NumCPU(), "set the number of textures converted at once")
	previewScale = flag.Int("preview", 0, "also write an enlarged preview sheet at this scale (0 = none)")
	failFast     = flag.Bool("fail-fast", false, "stop at the first failed texture")
	verbose      = flag.Bool("v", false, "log debug output")
	kind         = chestconv.KindBoth
)

func main() {
	flag.Var(&kind, "kind", "set which atlases to convert for named textures (single, double or both)")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	})
	log := slog.New(handler)

	if *workers < 1 {
		log.Error("workers cannot be less than 1")
		os.Exit(1)
	}

	if *previewScale < 0 {
		log.Error("preview scale cannot be negative")
		os.Exit(1)
	}

	jobs, err := collectJobs()
	if err != nil {
		log.Error("failed to collect jobs", "err", err)
		os.Exit(1)
	}

	if len(jobs) == 0 {
		usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(*toPath, 0755); err != nil {
		log.Error("failed to create output folder", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Debug("starting batch", "jobs", len(jobs), "from", *fromPath, "to", *toPath,
		"workers", *workers)

	start := time.Now()

	err = chestconv.RunBatch(jobs, chestconv.BatchOptions{
		Context:      ctx,
		From:         *fromPath,
		To:           *toPath,
		Workers:      *workers,
		FailFast:     *failFast,
		Debug:        *debug,
		Preview:      *previewScale > 0,
		PreviewScale: *previewScale,
		LogHandler:   handler,
	})
	if err != nil {
		log.Error("batch failed", "err", err)
		os.Exit(1)
	}

	log.Info("done", "textures", len(jobs), "took", time.Since(start))
}

func collectJobs() ([]chestconv.Job, error) {
	var jobs []chestconv.Job

	if *manifestPath != "" {
		manifest, err := chestconv.LoadManifest(*manifestPath)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, manifest...)
	}

	if *scan {
		found, err := chestconv.DiscoverJobs(*fromPath)
		if err != nil {
			return nil, err
		}
		for i := range found {
			found[i].FlipSingle = *flipSingle
		}
		jobs = append(jobs, found...)
	}

	for _, name := range flag.Args() {
		jobs = append(jobs, chestconv.Job{
			Name:       name,
			Kind:       kind,
			FlipSingle: *flipSingle,
		})
	}

	return chestconv.UniqueJobs(jobs), nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: chestconv [options] [name...]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "chestconv converts legacy chest textures to the split layout.")
	fmt.Fprintln(out, "For every name, <from>/name.png becomes <to>/name.png and")
	fmt.Fprintln(out, "<from>/name_double.png becomes <to>/name_left.png and <to>/name_right.png.")
	fmt.Fprintln(out, "Jobs can also come from -manifest or -scan.")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
}
