package encoder

import (
	"errors"
	"strings"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Daewooki/simple-shorts-generator/internal/config"
	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
)

// stubRunner fails its first N invocations and records every stream.
type stubRunner struct {
	failures int
	calls    int
	streams  []*ffmpeg.Stream
}

func (s *stubRunner) Run(stream *ffmpeg.Stream) *ffmpegWrap.RunResult {
	s.calls++
	s.streams = append(s.streams, stream)
	if s.calls <= s.failures {
		return &ffmpegWrap.RunResult{
			ExitCode: 1,
			Output:   "encoder exploded",
			Err:      errors.New("exit status 1"),
		}
	}
	return &ffmpegWrap.RunResult{}
}

func testJob() Job {
	return Job{
		SlidePath:  "/tmp/slide_000.png",
		OutputPath: "/tmp/clip_000.mp4",
		Index:      0,
		Seconds:    5.0,
	}
}

func streamArgs(s *ffmpeg.Stream) string {
	return strings.Join(s.GetArgs(), " ")
}

func TestEncodePrimarySucceeds(t *testing.T) {
	runner := &stubRunner{}
	enc := New(runner, config.Default())

	if err := enc.Encode(testJob()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if runner.calls != 1 {
		t.Errorf("Expected 1 invocation, got %d", runner.calls)
	}
	if !strings.Contains(streamArgs(runner.streams[0]), "zoompan") {
		t.Errorf("Primary encode should carry the zoompan filter: %s", streamArgs(runner.streams[0]))
	}
}

func TestEncodeFallbackTriggeredOnce(t *testing.T) {
	runner := &stubRunner{failures: 1}
	enc := New(runner, config.Default())

	if err := enc.Encode(testJob()); err != nil {
		t.Fatalf("Encode should succeed via fallback: %v", err)
	}
	if runner.calls != 2 {
		t.Errorf("Expected primary + one fallback invocation, got %d", runner.calls)
	}

	fallback := streamArgs(runner.streams[1])
	if strings.Contains(fallback, "zoompan") {
		t.Errorf("Fallback must not use zoompan: %s", fallback)
	}
	if !strings.Contains(fallback, "scale=1080:1920") {
		t.Errorf("Fallback should scale to the target resolution: %s", fallback)
	}
	if !strings.Contains(fallback, "-loop") {
		t.Errorf("Fallback should loop the still image input: %s", fallback)
	}
	if !strings.Contains(fallback, "-r") {
		t.Errorf("Fallback should pin a constant frame rate: %s", fallback)
	}
}

func TestEncodeNoInfiniteRetry(t *testing.T) {
	runner := &stubRunner{failures: 10}
	enc := New(runner, config.Default())

	err := enc.Encode(testJob())
	if err == nil {
		t.Fatal("Expected error when both encode paths fail")
	}
	if runner.calls != 2 {
		t.Errorf("Fallback must be attempted exactly once, got %d invocations", runner.calls)
	}
	if !strings.Contains(err.Error(), "encoder exploded") {
		t.Errorf("Error should carry the captured diagnostics: %v", err)
	}
}

func TestEncodeWithNarration(t *testing.T) {
	runner := &stubRunner{}
	enc := New(runner, config.Default())

	job := testJob()
	job.NarrationPath = "/tmp/tts_000.mp3"
	if err := enc.Encode(job); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	args := streamArgs(runner.streams[0])
	if !strings.Contains(args, "tts_000.mp3") {
		t.Errorf("Narration input missing from invocation: %s", args)
	}
	if !strings.Contains(args, "-shortest") {
		t.Errorf("Narrated encode should clamp to the shorter stream: %s", args)
	}
}

func TestEncodeRejectsOverlappingFades(t *testing.T) {
	runner := &stubRunner{}
	enc := New(runner, config.Default())

	job := testJob()
	job.Seconds = 0.6
	if err := enc.Encode(job); err == nil {
		t.Fatal("Expected error for a duration shorter than the fade windows")
	}
	if runner.calls != 0 {
		t.Errorf("Invalid timing should fail before any invocation, got %d", runner.calls)
	}
}
