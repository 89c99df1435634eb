package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
)

// ManifestName is the concat list file written into the scratch directory.
const ManifestName = "concat_list.txt"

// WriteManifest writes the concat demuxer list: one quoted absolute path
// per clip, preserving input order.
func WriteManifest(path string, clips []string) error {
	var sb strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return errors.WithStack(err)
		}
		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return errors.Wrapf(err, "failed to write concat manifest %s", path)
	}
	return nil
}

// Concatenator joins independently encoded clips into one continuous
// stream.
type Concatenator struct {
	runner ffmpegWrap.Runner
}

// New creates a concatenator.
func New(runner ffmpegWrap.Runner) *Concatenator {
	return &Concatenator{runner: runner}
}

// Concat assembles the manifest's clips into outputPath. Clips carrying
// audio are stream-copied; silent clips are normalized into the final
// container. A concat failure is fatal for the job.
func (c *Concatenator) Concat(manifestPath, outputPath string, hasAudio bool) error {
	input := ffmpeg.Input(manifestPath, ffmpeg.KwArgs{
		"f":    "concat",
		"safe": "0",
	})

	kwargs := ffmpeg.KwArgs{
		"movflags": "+faststart",
	}
	if hasAudio {
		kwargs["c:v"] = "copy"
		kwargs["c:a"] = "copy"
	} else {
		kwargs["c:v"] = "libx264"
		kwargs["pix_fmt"] = "yuv420p"
	}

	res := c.runner.Run(input.Output(outputPath, kwargs))
	if res.Failed() {
		return errors.Errorf("concatenation failed (exit %d): %s", res.ExitCode, res.Diagnostic())
	}
	return nil
}
