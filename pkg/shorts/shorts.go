package shorts

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/Daewooki/simple-shorts-generator/internal/config"
	"github.com/Daewooki/simple-shorts-generator/internal/content"
	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
	"github.com/Daewooki/simple-shorts-generator/internal/narration"
	"github.com/Daewooki/simple-shorts-generator/internal/pipeline"
)

// Options configures one composition run.
type Options struct {
	// SlidesDir is scanned for slide images when SlidePaths is empty.
	SlidesDir string
	// SlidePaths lists the rendered slide images in display order.
	SlidePaths []string
	// NarrationDir optionally holds one audio clip per slide, in name
	// order matching the slides.
	NarrationDir string
	// OutputPath overrides the default dated output filename.
	OutputPath  string
	ContentType string
	Topic       string
	ConfigPath  string
	Verbose     bool
}

// Result reports a finished composition.
type Result = pipeline.Result

// GetSupportedContentTypes returns the known content type names.
func GetSupportedContentTypes() []string {
	return content.Supported()
}

// Compose runs the full slide-to-video pipeline and returns the final
// output's location and timing summary.
func Compose(opts *Options) (*Result, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	typeName := opts.ContentType
	if typeName == "" {
		typeName = "quote"
	}
	contentType, err := content.Get(typeName)
	if err != nil {
		return nil, err
	}

	slidePaths := opts.SlidePaths
	if len(slidePaths) == 0 {
		slidePaths, err = discoverSlides(opts.SlidesDir)
		if err != nil {
			return nil, err
		}
	}

	var track *narration.Track
	if opts.NarrationDir != "" {
		proc := ffmpegWrap.NewProcessor(opts.Verbose)
		track, err = narration.LoadDir(proc, opts.NarrationDir)
		if err != nil {
			log.Printf("Warning: narration unavailable, continuing without it: %v", err)
			track = nil
		}
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		name := fmt.Sprintf("%s_%s_%s.mp4",
			cfg.Output.FilenamePrefix, time.Now().Format("20060102"), contentType.Name)
		outputPath = filepath.Join(cfg.Output.Directory, name)
	}

	fmt.Printf("Composing %q video from %d slides\n",
		contentType.Display(opts.Topic), len(slidePaths))

	return pipeline.New(cfg, opts.Verbose).Run(&pipeline.Options{
		SlidePaths: slidePaths,
		Narration:  track,
		OutputPath: outputPath,
		Verbose:    opts.Verbose,
	})
}

var imagePatterns = []string{"*.png", "*.jpg", "*.jpeg"}

func discoverSlides(dir string) ([]string, error) {
	if dir == "" {
		return nil, errors.New("no slides supplied")
	}

	var paths []string
	for _, pattern := range imagePatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil {
			paths = append(paths, matches...)
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, errors.Errorf("no slide images found in %s", dir)
	}
	return paths, nil
}
