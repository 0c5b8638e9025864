package fimgen

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/fimgen/blocks"
	"github.com/arjunmahishi/fimgen/parser"
	"github.com/arjunmahishi/fimgen/types"
)

const cardComponent = `<script>
import Icon from './Icon.svelte';
export let title = 'Card';
</script>

<article class="card">
  <h2>{title}</h2>
  <Icon name="star" />
</article>
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readSamples(t *testing.T, path string) []types.Sample {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var samples []types.Sample
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var s types.Sample
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		samples = append(samples, s)
	}
	require.NoError(t, sc.Err())
	return samples
}

func TestGenerateToFiles(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	for _, name := range []string{"A.svelte", "nested/B.svelte"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(cardComponent), 0644))
	}

	opts := GenerateOptions{
		Path:     root,
		Jobs:     2,
		TrainOut: filepath.Join(out, "train.jsonl"),
		TestOut:  filepath.Join(out, "test.jsonl"),
		Seed:     1,
		Logger:   quietLogger(),
	}

	stats, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Files)
	require.Equal(t, 2, stats.Succeeded)
	require.Positive(t, stats.Samples)
	require.Equal(t, stats.Samples, stats.TrainSamples+stats.TestSamples)

	train := readSamples(t, opts.TrainOut)
	test := readSamples(t, opts.TestOut)
	require.Len(t, append(train, test...), stats.Samples)

	for _, s := range append(train, test...) {
		require.Contains(t, []string{"A.svelte", "nested/B.svelte"}, s.FilePath)
		require.NotEmpty(t, s.Middle)
		require.LessOrEqual(t, len(s.Prefix)+len(s.Middle)+len(s.Suffix), DefaultMaxChunkLen)
		require.Equal(t, cardComponent, reassemble(s, cardComponent))
	}

	// Outputs are appended to by default.
	_, err = Generate(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, readSamples(t, opts.TrainOut), 2*len(train))

	// Truncate starts over.
	opts.Truncate = true
	_, err = Generate(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, readSamples(t, opts.TrainOut), len(train))
}

// reassemble checks that a sample is a contiguous cut of the file and
// returns the file when it is.
func reassemble(s types.Sample, file string) string {
	cut := s.Prefix + s.Middle + s.Suffix
	for i := 0; i+len(cut) <= len(file); i++ {
		if file[i:i+len(cut)] == cut {
			return file
		}
	}
	return ""
}

func TestGenerateSameSplitsAcrossWorkerCounts(t *testing.T) {
	root := t.TempDir()
	for i := range 12 {
		name := filepath.Join(root, string(rune('a'+i))+".svelte")
		require.NoError(t, os.WriteFile(name, []byte(cardComponent), 0644))
	}

	run := func(jobs int) *memorySink {
		sink := &memorySink{}
		_, err := Generate(context.Background(), GenerateOptions{
			Path:      root,
			Jobs:      jobs,
			TestRatio: 0.5,
			Seed:      2024,
			Sink:      sink,
			Logger:    quietLogger(),
		})
		require.NoError(t, err)
		return sink
	}

	require.Equal(t, run(1).writes, run(8).writes)
}

func TestGenerateParseErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Broken.svelte"),
		[]byte("<script>\nfunction broken( {\n</script>\n<p>still here and long enough</p>\n"), 0644))

	stats, err := Generate(context.Background(), GenerateOptions{
		Path:   root,
		Sink:   &memorySink{},
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Failed)
	require.Zero(t, stats.Samples)

	stats, err = Generate(context.Background(), GenerateOptions{
		Path:             root,
		Sink:             &memorySink{},
		AllowParseErrors: true,
		Logger:           quietLogger(),
	})
	require.NoError(t, err)
	require.Zero(t, stats.Failed)
	require.Equal(t, 1, stats.Succeeded)
}

type failingSink struct{}

func (failingSink) Write(types.Split, types.Sample) error {
	return errors.New("disk full")
}

func TestGenerateSinkError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "A.svelte"), []byte(cardComponent), 0644))

	_, err := Generate(context.Background(), GenerateOptions{
		Path:   root,
		Sink:   failingSink{},
		Logger: quietLogger(),
	})
	require.ErrorContains(t, err, "disk full")
}

func TestGenerateMissingRoot(t *testing.T) {
	_, err := Generate(context.Background(), GenerateOptions{
		Path:   filepath.Join(t.TempDir(), "missing"),
		Sink:   &memorySink{},
		Logger: quietLogger(),
	})
	require.Error(t, err)
}

func TestGenerateCancelled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "A.svelte"), []byte(cardComponent), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, GenerateOptions{Path: root, Sink: &memorySink{}, Logger: quietLogger()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractSamplesFileError(t *testing.T) {
	p, err := parser.New(parser.Options{})
	require.NoError(t, err)

	_, err = extractSamples(context.Background(), p,
		types.FileJob{AbsPath: filepath.Join(t.TempDir(), "gone.svelte"), DisplayPath: "gone.svelte"},
		blocks.Options{}, DefaultMaxChunkLen)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, "gone.svelte", fileErr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspectRequiresFile(t *testing.T) {
	_, err := Inspect(context.Background(), InspectOptions{})
	require.ErrorIs(t, err, ErrFileRequired)
}
