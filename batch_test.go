package chestconv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Kind
		err      bool
	}{
		{name: "empty", input: "", expected: KindBoth},
		{name: "both", input: "both", expected: KindBoth},
		{name: "single", input: "single", expected: KindSingle},
		{name: "double", input: "double", expected: KindDouble},
		{name: "unknown", input: "triple", err: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var k Kind
			err := k.UnmarshalText([]byte(test.input))
			if test.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, k)
		})
	}

	text, err := KindDouble.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "double", string(text))
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestBatchOptionsValidate(t *testing.T) {
	valid := BatchOptions{Context: context.Background(), From: "a", To: "b", Workers: 1}

	tests := []struct {
		name   string
		modify func(*BatchOptions)
		err    string
	}{
		{name: "valid", modify: func(*BatchOptions) {}},
		{name: "no context", modify: func(o *BatchOptions) { o.Context = nil }, err: "context"},
		{name: "no source", modify: func(o *BatchOptions) { o.From = "" }, err: "source"},
		{name: "no destination", modify: func(o *BatchOptions) { o.To = "" }, err: "destination"},
		{name: "no workers", modify: func(o *BatchOptions) { o.Workers = 0 }, err: "workers"},
		{name: "preview without scale", modify: func(o *BatchOptions) { o.Preview = true }, err: "preview"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := valid
			test.modify(&opts)
			err := opts.validate()
			if test.err == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
}

func setupFolder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if strings.HasSuffix(name, "_double") {
			writePNG(t, filepath.Join(dir, name+".png"), gradient(128, 64))
		} else {
			writePNG(t, filepath.Join(dir, name+".png"), gradient(64, 64))
		}
	}
	return dir
}

func TestRunBatch(t *testing.T) {
	from := setupFolder(t, "normal", "normal_double", "ender", "trapped_double")
	to := t.TempDir()
	logs := new(bytes.Buffer)

	jobs := []Job{
		{Name: "normal", Kind: KindBoth},
		{Name: "ender", Kind: KindSingle, FlipSingle: true},
		{Name: "trapped", Kind: KindDouble},
	}

	err := RunBatch(jobs, BatchOptions{
		Context:      context.Background(),
		From:         from,
		To:           to,
		Workers:      2,
		Preview:      true,
		PreviewScale: 2,
		LogHandler:   slog.NewTextHandler(logs, nil),
	})
	require.NoError(t, err)

	for _, path := range []string{
		SinglePath(to, "normal"),
		LeftPath(to, "normal"),
		RightPath(to, "normal"),
		PreviewPath(to, "normal"),
		SinglePath(to, "ender"),
		LeftPath(to, "trapped"),
		RightPath(to, "trapped"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	_, err = os.Stat(LeftPath(to, "ender"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.Equal(t, 3, strings.Count(logs.String(), "msg=converted"))
}

func TestRunBatchCollectsFailures(t *testing.T) {
	from := setupFolder(t, "normal")
	to := t.TempDir()

	jobs := []Job{
		{Name: "normal", Kind: KindSingle},
		{Name: "missing", Kind: KindSingle},
		{Name: "gone", Kind: KindDouble},
	}

	err := RunBatch(jobs, BatchOptions{
		Context: context.Background(),
		From:    from,
		To:      to,
		Workers: 1,
	})
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, err.Error(), "missing.png")
	assert.Contains(t, err.Error(), "gone_double.png")

	_, err = os.Stat(SinglePath(to, "normal"))
	assert.NoError(t, err)
}

func TestRunBatchFailFast(t *testing.T) {
	from := setupFolder(t)
	to := t.TempDir()

	err := RunBatch([]Job{{Name: "missing", Kind: KindSingle}}, BatchOptions{
		Context:  context.Background(),
		From:     from,
		To:       to,
		Workers:  1,
		FailFast: true,
	})

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, SinglePath(from, "missing"), decodeErr.Path)
}

func TestRunBatchCancelled(t *testing.T) {
	from := setupFolder(t, "normal")
	to := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunBatch([]Job{{Name: "normal", Kind: KindSingle}}, BatchOptions{
		Context: ctx,
		From:    from,
		To:      to,
		Workers: 1,
	})
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = os.Stat(SinglePath(to, "normal"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// cancelOnRecord cancels the batch context as soon as anything is logged.
type cancelOnRecord struct {
	slog.Handler
	cancel context.CancelFunc
}

func (h cancelOnRecord) Handle(ctx context.Context, r slog.Record) error {
	h.cancel()
	return h.Handler.Handle(ctx, r)
}

func TestRunBatchCancelledKeepsFailures(t *testing.T) {
	from := setupFolder(t)
	to := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := RunBatch([]Job{{Name: "missing", Kind: KindSingle}}, BatchOptions{
		Context: ctx,
		From:    from,
		To:      to,
		Workers: 1,
		LogHandler: cancelOnRecord{
			Handler: slog.NewTextHandler(io.Discard, nil),
			cancel:  cancel,
		},
	})
	assert.True(t, errors.Is(err, context.Canceled))

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, SinglePath(from, "missing"), decodeErr.Path)
}

func TestRunBatchRollsBackFailedJob(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		preview bool
		setup   func(t *testing.T, to string)
	}{
		{
			name:  "double missing",
			files: []string{"normal"},
		},
		{
			name:    "preview unwritable",
			files:   []string{"normal", "normal_double"},
			preview: true,
			setup: func(t *testing.T, to string) {
				require.NoError(t, os.Mkdir(PreviewPath(to, "normal"), 0755))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			from := setupFolder(t, test.files...)
			to := t.TempDir()
			if test.setup != nil {
				test.setup(t, to)
			}

			err := RunBatch([]Job{{Name: "normal", Kind: KindBoth}}, BatchOptions{
				Context:      context.Background(),
				From:         from,
				To:           to,
				Workers:      1,
				Preview:      test.preview,
				PreviewScale: 1,
			})
			require.Error(t, err)

			for _, path := range []string{
				SinglePath(to, "normal"),
				LeftPath(to, "normal"),
				RightPath(to, "normal"),
			} {
				_, err := os.Stat(path)
				assert.True(t, errors.Is(err, os.ErrNotExist), path)
			}
		})
	}
}

func TestUniqueJobs(t *testing.T) {
	jobs := UniqueJobs([]Job{
		{Name: "normal", Kind: KindBoth},
		{Name: "ender", Kind: KindSingle},
		{Name: "normal", Kind: KindSingle, FlipSingle: true},
	})
	assert.Equal(t, []Job{
		{Name: "normal", Kind: KindBoth},
		{Name: "ender", Kind: KindSingle},
	}, jobs)
}

func TestDiscoverJobs(t *testing.T) {
	dir := setupFolder(t, "normal", "normal_double", "ender", "trapped_double",
		"christmas_left", "christmas_right", "normal_preview")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))

	jobs, err := DiscoverJobs(dir)
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Name: "ender", Kind: KindSingle},
		{Name: "normal", Kind: KindBoth},
		{Name: "trapped", Kind: KindDouble},
	}, jobs)

	_, err = DiscoverJobs(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Job
		err      string
	}{
		{
			name: "valid",
			input: `{"jobs": [
				{"name": "normal"},
				{"name": "ender", "kind": "single", "flip_single": true},
				{"name": "trapped", "kind": "double"}
			]}`,
			expected: []Job{
				{Name: "normal", Kind: KindBoth},
				{Name: "ender", Kind: KindSingle, FlipSingle: true},
				{Name: "trapped", Kind: KindDouble},
			},
		},
		{
			name:  "missing name",
			input: `{"jobs": [{"kind": "single"}]}`,
			err:   "name is required",
		},
		{
			name:  "duplicate name",
			input: `{"jobs": [{"name": "a"}, {"name": "a"}]}`,
			err:   "duplicate",
		},
		{
			name:  "bad kind",
			input: `{"jobs": [{"name": "a", "kind": "triple"}]}`,
			err:   "unknown kind",
		},
		{
			name:  "not json",
			input: `jobs:`,
			err:   "failed to parse",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			require.NoError(t, os.WriteFile(path, []byte(test.input), 0644))

			jobs, err := LoadManifest(path)
			if test.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, jobs)
		})
	}

	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}
