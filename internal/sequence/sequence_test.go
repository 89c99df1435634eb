package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
)

type captureRunner struct {
	fail   bool
	stream *ffmpeg.Stream
}

func (c *captureRunner) Run(stream *ffmpeg.Stream) *ffmpegWrap.RunResult {
	c.stream = stream
	if c.fail {
		return &ffmpegWrap.RunResult{
			ExitCode: 1,
			Output:   "concat demuxer error",
			Err:      errors.New("exit status 1"),
		}
	}
	return &ffmpegWrap.RunResult{}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	clips := []string{
		filepath.Join(dir, "clip_000.mp4"),
		filepath.Join(dir, "clip_001.mp4"),
		filepath.Join(dir, "clip_002.mp4"),
	}

	manifest := filepath.Join(dir, ManifestName)
	if err := WriteManifest(manifest, clips); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != len(clips) {
		t.Fatalf("Expected %d manifest lines, got %d", len(clips), len(lines))
	}
	for i, line := range lines {
		abs, _ := filepath.Abs(clips[i])
		want := fmt.Sprintf("file '%s'", abs)
		if line != want {
			t.Errorf("Line %d: expected %q, got %q", i, want, line)
		}
	}
}

func TestConcatStreamCopiesWithAudio(t *testing.T) {
	runner := &captureRunner{}
	c := New(runner)

	if err := c.Concat("/tmp/concat_list.txt", "/tmp/out.mp4", true); err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	args := strings.Join(runner.stream.GetArgs(), " ")
	if !strings.Contains(args, "concat") {
		t.Errorf("Expected concat demuxer input: %s", args)
	}
	if !strings.Contains(args, "copy") {
		t.Errorf("Audio-carrying concat should stream-copy: %s", args)
	}
	if strings.Contains(args, "libx264") {
		t.Errorf("Audio-carrying concat should not re-encode: %s", args)
	}
}

func TestConcatNormalizesWithoutAudio(t *testing.T) {
	runner := &captureRunner{}
	c := New(runner)

	if err := c.Concat("/tmp/concat_list.txt", "/tmp/out.mp4", false); err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	args := strings.Join(runner.stream.GetArgs(), " ")
	if !strings.Contains(args, "libx264") {
		t.Errorf("Silent concat should normalize into the final container: %s", args)
	}
}

func TestConcatFailureIsFatal(t *testing.T) {
	runner := &captureRunner{fail: true}
	c := New(runner)

	err := c.Concat("/tmp/concat_list.txt", "/tmp/out.mp4", true)
	if err == nil {
		t.Fatal("Expected concat failure to surface")
	}
	if !strings.Contains(err.Error(), "concat demuxer error") {
		t.Errorf("Error should carry the truncated diagnostics: %v", err)
	}
}
