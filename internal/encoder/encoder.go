package encoder

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Daewooki/simple-shorts-generator/internal/animation"
	"github.com/Daewooki/simple-shorts-generator/internal/config"
	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
)

// Job describes one slide to encode into a clip.
type Job struct {
	SlidePath     string
	NarrationPath string // empty when the slide has no narration
	OutputPath    string
	Index         int
	Seconds       float64
}

// Encoder turns slide images into fixed-length animated clips.
type Encoder struct {
	runner     ffmpegWrap.Runner
	width      int
	height     int
	fps        int
	transition float64
}

// New creates a slide encoder bound to the configured resolution and
// timing.
func New(runner ffmpegWrap.Runner, cfg *config.Config) *Encoder {
	return &Encoder{
		runner:     runner,
		width:      cfg.Video.Width,
		height:     cfg.Video.Height,
		fps:        cfg.Video.FPS,
		transition: cfg.Video.TransitionSeconds,
	}
}

// Encode renders one clip. The animated encode is attempted first; if it
// fails, a single reduced encode (scale+fade on a looped input at a fixed
// rate) is tried before the slide is reported failed.
func (e *Encoder) Encode(job Job) error {
	params, err := animation.Build(job.Index, e.fps, job.Seconds, e.transition)
	if err != nil {
		return errors.Wrapf(err, "slide %d", job.Index+1)
	}

	res := e.runner.Run(e.primaryStream(job, params))
	if !res.Failed() {
		return nil
	}
	log.Printf("Warning: animated encode failed for slide %d (exit %d), retrying without zoom: %s",
		job.Index+1, res.ExitCode, res.Diagnostic())

	res = e.runner.Run(e.fallbackStream(job, params))
	if res.Failed() {
		return errors.Errorf("slide %d encode failed (exit %d): %s",
			job.Index+1, res.ExitCode, res.Diagnostic())
	}
	return nil
}

func (e *Encoder) primaryStream(job Job, params animation.Params) *ffmpeg.Stream {
	kwargs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"t":       fmt.Sprintf("%.3f", job.Seconds),
		"pix_fmt": "yuv420p",
		"vf":      params.FilterChain(e.width, e.height, e.fps),
	}

	slide := ffmpeg.Input(job.SlidePath)
	if job.NarrationPath == "" {
		return slide.Output(job.OutputPath, kwargs)
	}

	kwargs["c:a"] = "aac"
	kwargs["b:a"] = config.NarrationAudioBitrate
	kwargs["shortest"] = ""
	return ffmpeg.Output(
		[]*ffmpeg.Stream{slide, ffmpeg.Input(job.NarrationPath)},
		job.OutputPath, kwargs)
}

func (e *Encoder) fallbackStream(job Job, params animation.Params) *ffmpeg.Stream {
	kwargs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"t":       fmt.Sprintf("%.3f", job.Seconds),
		"pix_fmt": "yuv420p",
		"r":       e.fps,
		"vf":      params.FallbackChain(e.width, e.height),
	}

	// The image is looped as a single frame instead of relying on zoompan
	// to stretch it across the clip.
	slide := ffmpeg.Input(job.SlidePath, ffmpeg.KwArgs{"loop": 1})
	if job.NarrationPath == "" {
		return slide.Output(job.OutputPath, kwargs)
	}

	kwargs["c:a"] = "aac"
	kwargs["b:a"] = config.NarrationAudioBitrate
	kwargs["shortest"] = ""
	return ffmpeg.Output(
		[]*ffmpeg.Stream{slide, ffmpeg.Input(job.NarrationPath)},
		job.OutputPath, kwargs)
}
