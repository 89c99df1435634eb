package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// DiagnosticLimit bounds how much captured ffmpeg output is carried
	// into error messages.
	DiagnosticLimit = 200

	// DefaultAudioSeconds is assumed for an audio file whose duration
	// cannot be probed.
	DefaultAudioSeconds = 5.0

	probeTimeout = 10 * time.Second
)

// RunResult captures one ffmpeg invocation: exit status, combined output
// and elapsed wall time.
type RunResult struct {
	ExitCode int
	Output   string
	Elapsed  time.Duration
	Err      error
}

// Failed reports whether the invocation returned an error.
func (r *RunResult) Failed() bool {
	return r.Err != nil
}

// Diagnostic returns the captured output truncated to DiagnosticLimit.
func (r *RunResult) Diagnostic() string {
	return Truncate(r.Output, DiagnosticLimit)
}

// Truncate trims s to at most n bytes.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Runner abstracts ffmpeg execution so encoding paths can be exercised in
// tests without the binary.
type Runner interface {
	Run(stream *ffmpeg.Stream) *RunResult
}

// Processor wraps ffmpeg invocation with captured diagnostics.
type Processor struct {
	verbose bool
}

// NewProcessor creates a new ffmpeg processor.
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// CheckAvailable verifies the ffmpeg binary is on PATH and responsive.
func (p *Processor) CheckAvailable() error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, "ffmpeg", "-version").Run(); err != nil {
		return errors.Wrap(err, "ffmpeg is not available; install it and make sure it is on PATH")
	}
	return nil
}

// Run executes a compiled stream synchronously, capturing its combined
// output and exit status instead of streaming them to the console.
func (p *Processor) Run(stream *ffmpeg.Stream) *RunResult {
	cmd := stream.OverWriteOutput().Compile()

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()

	res := &RunResult{
		Output:  out.String(),
		Elapsed: time.Since(start),
		Err:     err,
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
	}

	if p.verbose {
		log.Printf("ffmpeg finished in %.2fs (exit %d): %s\n",
			res.Elapsed.Seconds(), res.ExitCode, strings.Join(cmd.Args, " "))
	}

	return res
}

// ProbeAudioSeconds measures the duration of an encoded audio file with a
// bounded wait.
func (p *Processor) ProbeAudioSeconds(path string) (float64, error) {
	probe, err := ffmpeg.ProbeWithTimeout(path, probeTimeout, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "error probing audio %s", path)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return 0, errors.WithStack(err)
	}

	if format, ok := data["format"].(map[string]interface{}); ok {
		if durationStr, ok := format["duration"].(string); ok {
			if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
				return d, nil
			}
		}
	}

	return 0, errors.Errorf("could not determine duration of %s", path)
}
