package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Daewooki/simple-shorts-generator/internal/bgm"
	"github.com/Daewooki/simple-shorts-generator/internal/config"
	"github.com/Daewooki/simple-shorts-generator/internal/encoder"
	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
	"github.com/Daewooki/simple-shorts-generator/internal/narration"
	"github.com/Daewooki/simple-shorts-generator/internal/sequence"
	"github.com/Daewooki/simple-shorts-generator/internal/timing"
)

// Options carries one composition job.
type Options struct {
	SlidePaths []string
	Narration  *narration.Track
	OutputPath string
	Verbose    bool
}

// Result reports a finished job.
type Result struct {
	JobID        string
	OutputPath   string
	SizeBytes    int64
	TotalSeconds float64
	FailedSlides []int
}

// clipEncoder lets tests substitute the ffmpeg-backed slide encoder.
type clipEncoder interface {
	Encode(job encoder.Job) error
}

// Pipeline sequences duration resolution, per-slide encoding,
// concatenation and background mixing for one job.
type Pipeline struct {
	cfg       *config.Config
	enc       clipEncoder
	concat    *sequence.Concatenator
	mixer     *bgm.Mixer
	preflight func() error
}

// New builds a pipeline backed by the local ffmpeg binary.
func New(cfg *config.Config, verbose bool) *Pipeline {
	proc := ffmpegWrap.NewProcessor(verbose)
	return &Pipeline{
		cfg:       cfg,
		enc:       encoder.New(proc, cfg),
		concat:    sequence.New(proc),
		mixer:     bgm.NewMixer(proc, cfg.BGM.Volume),
		preflight: proc.CheckAvailable,
	}
}

// Run executes the whole job. Per-slide encode failures are collected and
// the affected slides skipped; concatenation and mixing failures abort the
// job. The scratch directory is removed on every path.
func (p *Pipeline) Run(opts *Options) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.preflight(); err != nil {
		return nil, err
	}
	if len(opts.SlidePaths) == 0 {
		return nil, errors.New("no slides supplied")
	}

	track := opts.Narration
	if track != nil && !track.Matches(len(opts.SlidePaths)) {
		log.Printf("Warning: narration covers %d of %d slides, ignoring narration entirely",
			len(track.Clips), len(opts.SlidePaths))
		track = nil
	}

	var narrationSeconds []float64
	if track != nil {
		narrationSeconds = track.Durations()
	}
	durations := timing.Resolve(len(opts.SlidePaths), narrationSeconds, p.cfg.Video.SlideSeconds)

	jobID := uuid.NewString()
	scratch := filepath.Join(os.TempDir(), "shorts_"+jobID)
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create scratch directory")
	}
	// Cleanup never surfaces: the scratch tree belongs to this run only.
	defer os.RemoveAll(scratch)

	result := &Result{
		JobID:      jobID,
		OutputPath: opts.OutputPath,
	}

	clips := make([]string, 0, len(opts.SlidePaths))
	for i, slidePath := range opts.SlidePaths {
		job := encoder.Job{
			SlidePath:  slidePath,
			OutputPath: filepath.Join(scratch, fmt.Sprintf("clip_%03d.mp4", i)),
			Index:      i,
			Seconds:    durations[i],
		}
		if track != nil {
			job.NarrationPath = track.Clips[i].Path
		}

		if err := p.enc.Encode(job); err != nil {
			log.Printf("Warning: skipping slide %d: %v", i+1, err)
			result.FailedSlides = append(result.FailedSlides, i)
			continue
		}
		clips = append(clips, job.OutputPath)
		result.TotalSeconds += durations[i]
		fmt.Printf("  encoded slide %d/%d (%.1fs)\n", i+1, len(opts.SlidePaths), durations[i])
	}
	if len(clips) == 0 {
		return nil, errors.New("all slides failed to encode")
	}

	manifest := filepath.Join(scratch, sequence.ManifestName)
	if err := sequence.WriteManifest(manifest, clips); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.OutputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}

	trackPath := ""
	if p.cfg.BGM.Enabled {
		trackPath = bgm.FindTrack(p.cfg.BGM.Dir)
		if trackPath == "" {
			log.Printf("Warning: no background track found in %s, continuing without music",
				p.cfg.BGM.Dir)
		}
	}

	hasNarration := track != nil
	concatTarget := opts.OutputPath
	if trackPath != "" {
		concatTarget = filepath.Join(scratch, "premix.mp4")
	}

	if err := p.concat.Concat(manifest, concatTarget, hasNarration); err != nil {
		return nil, err
	}

	if trackPath != "" {
		fmt.Printf("  mixing background track: %s\n", filepath.Base(trackPath))
		if err := p.mixer.Mix(concatTarget, trackPath, opts.OutputPath, hasNarration); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(opts.OutputPath)
	if err != nil {
		return nil, errors.Wrap(err, "final output file was not created")
	}
	result.SizeBytes = info.Size()

	return result, nil
}
