package chestconv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/FoxSamu/chestconv/preview"
	"golang.org/x/sync/errgroup"
)

// Kind selects which atlases of a texture a job converts.
type Kind int

// Possible job kinds.
const (
	KindBoth Kind = iota
	KindSingle
	KindDouble
)

var kindNames = map[Kind]string{
	KindBoth:   "both",
	KindSingle: "single",
	KindDouble: "double",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("chestconv: unknown kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is
// KindBoth.
func (k *Kind) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = KindBoth
		return nil
	}
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("chestconv: unknown kind %q (want single, double or both)", text)
}

// Set implements flag.Value.
func (k *Kind) Set(s string) error {
	return k.UnmarshalText([]byte(s))
}

// Job is the conversion of one named chest texture.
type Job struct {
	Name       string `json:"name"`
	Kind       Kind   `json:"kind"`
	FlipSingle bool   `json:"flip_single"`
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Context context.Context
	// From and To are the source and destination folders.
	From string
	To   string
	// Workers is the maximum number of jobs converted at once.
	Workers int
	// FailFast stops starting new jobs after the first failure.
	FailFast bool
	// Debug is passed to every conversion, see Options.
	Debug bool
	// Preview writes a name_preview.png sheet next to the outputs.
	Preview      bool
	PreviewScale int
	// LogHandler receives one record per job. Nothing is logged if nil.
	LogHandler slog.Handler
}

func (b *BatchOptions) validate() error {
	if b.Context == nil {
		return errors.New("chestconv: RunBatch: context must be specified")
	}
	if b.From == "" {
		return errors.New("chestconv: RunBatch: source folder must be specified")
	}
	if b.To == "" {
		return errors.New("chestconv: RunBatch: destination folder must be specified")
	}
	if b.Workers < 1 {
		return errors.New("chestconv: RunBatch: workers must be at least 1")
	}
	if b.Preview && b.PreviewScale < 1 {
		return errors.New("chestconv: RunBatch: preview scale must be at least 1")
	}

	return nil
}

func (b *BatchOptions) logger() *slog.Logger {
	if b.LogHandler == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(b.LogHandler)
}

// RunBatch converts every job with up to opts.Workers jobs in flight. Each
// job runs in its own goroutine on its own images. Unless opts.FailFast is
// set, every job is attempted and all failures are returned joined, along
// with the context's error if it was cancelled. A failed job leaves none of
// its outputs behind.
func RunBatch(jobs []Job, opts BatchOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	log := opts.logger()

	g, ctx := errgroup.WithContext(opts.Context)
	g.SetLimit(opts.Workers)

	var mutex sync.Mutex
	var failures []error

	for _, job := range jobs {
		job := job
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			err := runJob(job, &opts)
			if err != nil {
				log.Error("conversion failed", "name", job.Name, "kind", job.Kind, "err", err)
				if opts.FailFast {
					return err
				}
				mutex.Lock()
				failures = append(failures, err)
				mutex.Unlock()
				return nil
			}

			log.Info("converted", "name", job.Name, "kind", job.Kind,
				"flip_single", job.FlipSingle, "took", time.Since(start))
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = opts.Context.Err()
	}
	if err != nil {
		return errors.Join(append(failures, err)...)
	}

	return errors.Join(failures...)
}

func runJob(job Job, opts *BatchOptions) error {
	conv := Options{
		FlipSingle: job.FlipSingle,
		Debug:      opts.Debug,
	}

	var sheet []image.Image
	var written []string

	if job.Kind == KindSingle || job.Kind == KindBoth {
		imgs, err := convertSingleFile(opts.From, opts.To, job.Name, conv)
		if err != nil {
			return err
		}
		sheet = append(sheet, imgs...)
		written = append(written, SinglePath(opts.To, job.Name))
	}

	if job.Kind == KindDouble || job.Kind == KindBoth {
		imgs, err := convertDoubleFile(opts.From, opts.To, job.Name, conv)
		if err != nil {
			removeAll(written)
			return err
		}
		sheet = append(sheet, imgs...)
		written = append(written, LeftPath(opts.To, job.Name), RightPath(opts.To, job.Name))
	}

	if opts.Preview {
		err := SaveImage(PreviewPath(opts.To, job.Name),
			preview.Sheet(opts.PreviewScale, sheet...))
		if err != nil {
			removeAll(written)
			return err
		}
	}

	return nil
}
